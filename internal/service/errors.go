package service

import (
	"errors"
	"time"

	"github.com/MKhiriev/clearnext/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrTaskNotOwned         = errors.New("task does not belong to this user")
	ErrDayMismatch          = errors.New("day_number does not match the task")
	ErrJourneyTooShort      = errors.New("journey_days cannot be less than the days already completed")
	ErrDatabaseNotReachable = errors.New("database is not reachable")
)

// ErrInvalidReflection is matched by every *ReflectionRejectedError.
var ErrInvalidReflection = errors.New("invalid reflection")

// ReflectionRejectedError is returned when a reflection fails the hard
// checks. Details carries the full analysis for the client.
type ReflectionRejectedError struct {
	Message string
	Details models.ValidationDetails
}

func (e *ReflectionRejectedError) Error() string {
	return e.Message
}

func (e *ReflectionRejectedError) Unwrap() error {
	return ErrInvalidReflection
}

// ErrNextTaskLocked is matched by every *NextTaskLockedError.
var ErrNextTaskLocked = errors.New("next task is locked until tomorrow")

// NextTaskLockedError is returned when the user already completed a task
// today and asks for the next day's task.
type NextTaskLockedError struct {
	NextAvailable time.Time
}

func (e *NextTaskLockedError) Error() string {
	return "today's task is already completed, the next one opens at " + e.NextAvailable.Format(time.RFC3339)
}

func (e *NextTaskLockedError) Unwrap() error {
	return ErrNextTaskLocked
}
