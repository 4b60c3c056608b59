package validators

import "errors"

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrCredentialsRequired = &ValidationError{Message: "Email and password are required"}
	ErrNoFieldsToUpdate    = &ValidationError{Message: "at least one field must be provided for update"}
)

// ValidationError describes a rejected request field. Message is meant for
// the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func requiredError(field string) error {
	return &ValidationError{Field: field, Message: field + " is required"}
}

func invalidError(field, reason string) error {
	return &ValidationError{Field: field, Message: field + " " + reason}
}
