package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/carlapp/ride-ledger/internal/domain"
)

// errorBody is the JSON error envelope: {"error":{"code":…,"message":…}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// respondDomainError maps sentinel domain errors onto HTTP statuses.
// Anything unrecognized is a 500 with a generic body; the detail goes to
// the log, not the client.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", errMessage(err))
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusUnprocessableEntity, "validation_error", errMessage(err))
	case errors.Is(err, domain.ErrRideInProgress):
		respondError(w, http.StatusConflict, "ride_in_progress", domain.ErrRideInProgress.Error())
	case errors.Is(err, domain.ErrNoActiveRide):
		respondError(w, http.StatusConflict, "no_active_ride", domain.ErrNoActiveRide.Error())
	default:
		slog.Error("handler error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// errMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "validation error: name is required" → "name is required".
func errMessage(err error) string {
	msg := err.Error()
	for _, prefix := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrNotFound.Error() + ": ",
	} {
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}
