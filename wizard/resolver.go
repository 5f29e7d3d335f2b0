package wizard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/satheeshds/termdeposit/models"
	"github.com/satheeshds/termdeposit/validation"
)

// DefaultDebounce is how long the reference input must stay unchanged before
// a lookup is sent.
const DefaultDebounce = 500 * time.Millisecond

// InvalidReferenceMessage is used when a failed lookup carries no structured error.
const InvalidReferenceMessage = "Invalid deal reference"

// ResolverState is the lifecycle of one reference input.
type ResolverState string

const (
	ResolverIdle     ResolverState = "IDLE"
	ResolverPending  ResolverState = "PENDING"
	ResolverInFlight ResolverState = "IN_FLIGHT"
	ResolverResolved ResolverState = "RESOLVED"
	ResolverFailed   ResolverState = "FAILED"
)

// DealInquirer looks up a deal by reference for a customer.
type DealInquirer interface {
	DealInquiry(ctx context.Context, dealID, customerKey string) (models.DealRecord, error)
}

// Resolution is the resolver state as of one input.
type Resolution struct {
	Seq   uint64
	Input string
	State ResolverState
	Deal  *models.DealRecord
	Error string
}

// Resolver debounces reference input and resolves it into a deal. Every input
// bumps a sequence number; a response is applied only if its sequence number is
// still the latest, so the last input wins regardless of response order.
type Resolver struct {
	inquirer    DealInquirer
	customerKey string
	delay       time.Duration
	logger      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	seq      uint64
	input    string
	state    ResolverState
	deal     *models.DealRecord
	err      string
	timer    *time.Timer
	onResult func(Resolution)
	closed   bool
}

// NewResolver returns an idle resolver. A zero delay means DefaultDebounce.
func NewResolver(inquirer DealInquirer, customerKey string, delay time.Duration, logger *slog.Logger) *Resolver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Resolver{
		inquirer:    inquirer,
		customerKey: customerKey,
		delay:       delay,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		state:       ResolverIdle,
	}
}

// OnResult registers the callback receiving RESOLVED and FAILED results. It is
// called without the resolver lock held.
func (r *Resolver) OnResult(fn func(Resolution)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onResult = fn
}

// SetInput records a keystroke. Blank input goes idle at once; anything else
// (re)starts the debounce window.
func (r *Resolver) SetInput(value string) Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.input = value
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.deal = nil
	r.err = ""

	if r.closed || strings.TrimSpace(value) == "" {
		r.state = ResolverIdle
		return r.currentLocked()
	}

	r.state = ResolverPending
	seq := r.seq
	r.timer = time.AfterFunc(r.delay, func() { r.fire(seq) })
	return r.currentLocked()
}

// Current returns the latest state.
func (r *Resolver) Current() Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentLocked()
}

// IsCurrent reports whether seq still belongs to the latest input.
func (r *Resolver) IsCurrent(seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return seq == r.seq
}

// Close stops the pending timer and cancels lookups in flight.
func (r *Resolver) Close() {
	r.mu.Lock()
	r.closed = true
	r.seq++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()
	r.cancel()
}

func (r *Resolver) currentLocked() Resolution {
	return Resolution{
		Seq:   r.seq,
		Input: r.input,
		State: r.state,
		Deal:  r.deal,
		Error: r.err,
	}
}

func (r *Resolver) fire(seq uint64) {
	r.mu.Lock()
	if seq != r.seq || r.closed {
		r.mu.Unlock()
		return
	}
	r.state = ResolverInFlight
	r.timer = nil
	input := r.input
	r.mu.Unlock()

	r.logger.Debug("deal inquiry sent", "reference", input)
	deal, err := r.inquirer.DealInquiry(r.ctx, input, r.customerKey)

	r.mu.Lock()
	if seq != r.seq {
		r.mu.Unlock()
		r.logger.Debug("stale deal inquiry discarded", "reference", input)
		return
	}
	if err != nil {
		r.state = ResolverFailed
		r.err = dealErrorMessage(err)
		r.deal = nil
		r.logger.Info("deal inquiry failed", "reference", input, "error", err)
	} else {
		r.state = ResolverResolved
		r.deal = &deal
		r.err = ""
	}
	res := r.currentLocked()
	cb := r.onResult
	r.mu.Unlock()

	if cb != nil {
		cb(res)
	}
}

// dealErrorMessage takes the first structured remote error; known codes are
// translated, unknown ones are shown as sent.
func dealErrorMessage(err error) string {
	var re *models.RemoteError
	if !errors.As(err, &re) {
		return InvalidReferenceMessage
	}
	first, ok := re.First()
	if !ok || first.Code == "" {
		return InvalidReferenceMessage
	}
	if msg, known := validation.LookupMessage(first.Code); known {
		return msg
	}
	return first.Code
}
