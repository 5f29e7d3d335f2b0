package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/satheeshds/termdeposit/models"
	"github.com/satheeshds/termdeposit/wizard"
)

// Response is the standard JSON envelope for all API responses.
type Response struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

// SubmissionStore reads the submission journal.
type SubmissionStore interface {
	List(ctx context.Context, limit int) ([]models.Submission, error)
	Ping(ctx context.Context) error
}

// BreakerReporter exposes the remote client's circuit breaker state.
type BreakerReporter interface {
	BreakerState() string
}

var (
	// Wizards holds the live wizard sessions.
	Wizards *wizard.Manager
	// Journal is the shared submission journal.
	Journal SubmissionStore
	// Deposits reports on the remote deposit backend.
	Deposits BreakerReporter
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Data: data})
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Error: msg})
}

// writeWizardError maps wizard errors onto status codes.
func writeWizardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrNotFound):
		writeError(w, http.StatusNotFound, "wizard not found")
	case errors.Is(err, wizard.ErrUnknownField),
		errors.Is(err, wizard.ErrInvalidMode),
		errors.Is(err, wizard.ErrModeMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, wizard.ErrReadOnlyField),
		errors.Is(err, wizard.ErrFieldLocked),
		errors.Is(err, wizard.ErrCompleted),
		errors.Is(err, wizard.ErrSubmitting),
		errors.Is(err, wizard.ErrNotPreviewing),
		errors.Is(err, wizard.ErrIllegalTransition):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("wizard request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// BasicAuth returns middleware that enforces HTTP Basic Authentication.
func BasicAuth(user, pass string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		// If no credentials are configured, skip auth
		if user == "" && pass == "" {
			slog.Warn("AUTH_USER and AUTH_PASS not set, API is unauthenticated")
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok || u != user || p != pass {
				w.Header().Set("WWW-Authenticate", `Basic realm="termdeposit"`)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
