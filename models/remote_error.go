package models

import (
	"fmt"
	"strings"
)

// APIError is one field-scoped rejection from a remote call.
type APIError struct {
	Field string `json:"field"`
	Code  string `json:"message"` // machine code, sent as "message" by the backend
}

// RemoteError is a structured rejection carrying an ordered list of field errors.
// The first element is authoritative when only one message is shown.
type RemoteError struct {
	StatusCode int
	Errors     []APIError
}

func (e *RemoteError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Code)
	}
	return fmt.Sprintf("remote rejected request (%d): %s", e.StatusCode, strings.Join(parts, "; "))
}

// First returns the authoritative error, if any.
func (e *RemoteError) First() (APIError, bool) {
	if e == nil || len(e.Errors) == 0 {
		return APIError{}, false
	}
	return e.Errors[0], true
}
