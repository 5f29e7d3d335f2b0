package wizard

import (
	"errors"
	"fmt"
)

// Phase is the orchestrator step the wizard is in.
type Phase string

const (
	PhaseEditing    Phase = "EDITING"
	PhasePreviewing Phase = "PREVIEWING"
	PhaseCompleted  Phase = "COMPLETED"
)

// ErrIllegalTransition is wrapped by every rejected phase change.
var ErrIllegalTransition = errors.New("illegal phase transition")

// Completed is terminal.
var legalTransitions = map[Phase]map[Phase]bool{
	PhaseEditing: {
		PhaseEditing:    true,
		PhasePreviewing: true,
	},
	PhasePreviewing: {
		PhaseEditing:    true,
		PhasePreviewing: true,
		PhaseCompleted:  true,
	},
	PhaseCompleted: {},
}

func validateTransition(from, to Phase) error {
	next, ok := legalTransitions[from]
	if !ok {
		return fmt.Errorf("%w: unknown phase %s", ErrIllegalTransition, from)
	}
	if !next[to] {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}
