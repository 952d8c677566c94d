package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

const (
	msgTaskNotFound    = "Task not found"
	msgUserExists      = "User already exists"
	msgInvalidCreds    = "Invalid credentials"
	msgMissingFields   = "Please enter all fields"
	msgServerError     = "Server Error"
	msgNotAuthorizedTo = "Not authorized to %s this task"
)

// writeServiceError is the one place service errors become HTTP responses.
// forbidden is the message used when the caller does not own the task.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, forbidden string) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		apiErr := tasksdk.NewAPIError(http.StatusBadRequest, tasksdk.ErrorCodeValidation, validationMessage(verr))
		apiErr.Details = verr.Fields
		apiErr.WriteError(w)

	case errors.Is(err, service.ErrDuplicateHandle):
		tasksdk.NewAPIError(http.StatusBadRequest, tasksdk.ErrorCodeUserExists, msgUserExists).WriteError(w)

	case errors.Is(err, service.ErrInvalidCredentials):
		tasksdk.NewAPIError(http.StatusBadRequest, tasksdk.ErrorCodeInvalidCredentials, msgInvalidCreds).WriteError(w)

	case errors.Is(err, service.ErrNotFound):
		tasksdk.NewAPIError(http.StatusNotFound, tasksdk.ErrorCodeNotFound, msgTaskNotFound).WriteError(w)

	// Ownership mismatch is a 401 here, existing clients rely on it.
	case errors.Is(err, service.ErrForbidden):
		tasksdk.NewAPIError(http.StatusUnauthorized, tasksdk.ErrorCodeNotAuthorized, forbidden).WriteError(w)

	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		tasksdk.NewAPIError(http.StatusInternalServerError, tasksdk.ErrorCodeServerError, msgServerError).WriteError(w)
	}
}

// writeBadRequest reports a body we could not even decode.
func writeBadRequest(w http.ResponseWriter, err error) {
	tasksdk.NewAPIError(http.StatusBadRequest, tasksdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
}

// validationMessage picks a single human readable line for the response, the
// full list is in details.
func validationMessage(verr *service.ValidationError) string {
	if len(verr.Fields) == 1 {
		for field, msg := range verr.Fields {
			if r := []rune(msg); len(r) > 0 && unicode.IsUpper(r[0]) {
				return msg
			}
			return field + " " + msg
		}
	}

	for _, msg := range verr.Fields {
		if msg != "is required" {
			return "Request validation failed"
		}
	}
	return msgMissingFields
}

// callerID returns the identity the access guard attached. A handler reached
// without one was wired up wrong, so the request fails loudly.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := httpx.UserIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		slogx.FromContext(r.Context()).Error("handler reached without caller identity",
			slog.String("path", r.URL.Path),
		)
		tasksdk.NewAPIError(http.StatusInternalServerError, tasksdk.ErrorCodeServerError, msgServerError).WriteError(w)
		return "", false
	}
	return id, true
}
