package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/service"
	"github.com/MKhiriev/clearnext/internal/store"
	"github.com/MKhiriev/clearnext/internal/validators"
)

const (
	msgInvalidJSON        = "Invalid JSON was passed"
	msgInvalidCredentials = "Invalid credentials"
	msgTooManyRequests    = "Too many login attempts, try again later"
	msgValidationFailed   = "Validation failed"
	msgNextTaskLocked     = "Today's task is already completed, come back tomorrow"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is scanned in order: specific errors must precede the generic
// store errors they wrap.
var errorMappings = []errorMapping{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, msgInvalidCredentials},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, "Token is expired or invalid"},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, "Authorization header is required"},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, "Authorization header must be a bearer token"},
	{ErrForeignUser, http.StatusForbidden, "Access to another user's data is forbidden"},
	{service.ErrNextTaskLocked, http.StatusForbidden, msgNextTaskLocked},
	{service.ErrTaskNotOwned, http.StatusForbidden, "Task does not belong to this user"},
	{service.ErrDayMismatch, http.StatusBadRequest, "day_number does not match the task"},
	{service.ErrJourneyTooShort, http.StatusBadRequest, "journey_days cannot be less than the days already completed"},

	{store.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
	{store.ErrReflectionNotFound, http.StatusNotFound, "Reflection not found"},
	{store.ErrEmailAlreadyExists, http.StatusConflict, "Email already registered"},
	{store.ErrTaskAlreadyExists, http.StatusConflict, "Task for this day already exists"},
	{store.ErrReflectionAlreadyExists, http.StatusConflict, "Reflection for this day already submitted"},
	{store.ErrTaskAlreadyCompleted, http.StatusConflict, "Task already completed"},

	{store.ErrNotFound, http.StatusNotFound, "Resource not found"},
	{store.ErrAlreadyExists, http.StatusConflict, "Resource already exists"},
	{store.ErrConflict, http.StatusConflict, "Resource is in a conflicting state"},

	{service.ErrDatabaseNotReachable, http.StatusServiceUnavailable, "Database is not reachable"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "Request timed out"},
}

// statusFromError resolves err to a status code and a client message. ok is
// false when nothing in the table matches.
func statusFromError(err error) (status int, message string, ok bool) {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message, true
	}

	var rejected *service.ReflectionRejectedError
	if errors.As(err, &rejected) {
		return http.StatusBadRequest, rejected.Message, true
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message, true
		}
	}

	return http.StatusInternalServerError, "", false
}

// writeError answers with the failure envelope for err. Unmatched errors are
// reported as 500 "Error <action>: <err>".
func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	log := logger.FromRequest(r)

	status, message, ok := statusFromError(err)
	if !ok {
		log.Err(err).Str("action", action).Msg("unexpected error")
		writeFailure(w, r, http.StatusInternalServerError, fmt.Sprintf("Error %s: %s", action, err), nil)
		return
	}

	log.Warn().Err(err).Int("status", status).Str("action", action).Send()
	writeFailure(w, r, status, message, nil)
}
