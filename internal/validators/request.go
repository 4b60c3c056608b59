package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/MKhiriev/clearnext/models"
)

// Field name constants used to scope validation.
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldStatus        = "status"
	FieldConfusionArea = "confusion_area"
	FieldStruggleType  = "struggle_type"
	FieldJourneyDays   = "journey_days"
	FieldCredentials   = "credentials"
	FieldUpdate        = "update"
)

const (
	// MinPasswordLength is the minimal accepted password length in bytes.
	MinPasswordLength = 8
	// MaxJourneyDays is the longest journey a user can choose.
	MaxJourneyDays = 365
)

var (
	guestFields    = []string{FieldName, FieldStatus, FieldConfusionArea, FieldStruggleType, FieldJourneyDays}
	registerFields = []string{FieldName, FieldEmail, FieldPassword, FieldStatus, FieldConfusionArea, FieldStruggleType, FieldJourneyDays}
)

// RequestValidator implements Validator for user-facing request bodies:
// GuestRequest, RegisterRequest, LoginRequest and UserUpdateRequest, in
// value or pointer form.
type RequestValidator struct {
}

// NewRequestValidator constructs a RequestValidator.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the dynamic type of obj. Optional fields restrict
// validation to the named subset; by default all fields are checked in the
// order the client sees them.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.GuestRequest:
		return v.validateGuest(value, orDefault(fields, guestFields)...)
	case *models.GuestRequest:
		return v.validateGuest(*value, orDefault(fields, guestFields)...)

	case models.RegisterRequest:
		return v.validateRegister(value, orDefault(fields, registerFields)...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, orDefault(fields, registerFields)...)

	case models.LoginRequest:
		return v.validateLogin(value)
	case *models.LoginRequest:
		return v.validateLogin(*value)

	case models.UserUpdateRequest:
		return v.validateUpdate(value)
	case *models.UserUpdateRequest:
		return v.validateUpdate(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateGuest(req models.GuestRequest, fields ...string) error {
	for _, f := range fields {
		switch f {
		case FieldName:
			if blank(req.Name) {
				return requiredError(FieldName)
			}
		case FieldStatus:
			if blank(req.Status) {
				return requiredError(FieldStatus)
			}
		case FieldConfusionArea:
			if blank(req.ConfusionArea) {
				return requiredError(FieldConfusionArea)
			}
		case FieldStruggleType:
			if blank(req.StruggleType) {
				return requiredError(FieldStruggleType)
			}
		case FieldJourneyDays:
			if err := validateJourneyDays(req.JourneyDays, true); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	for _, f := range fields {
		switch f {
		case FieldEmail:
			if blank(req.Email) {
				return requiredError(FieldEmail)
			}
			if !validEmail(req.Email) {
				return invalidError(FieldEmail, "is invalid")
			}
		case FieldPassword:
			if req.Password == "" {
				return requiredError(FieldPassword)
			}
			if len(req.Password) < MinPasswordLength {
				return invalidError(FieldPassword, fmt.Sprintf("must be at least %d characters", MinPasswordLength))
			}
		default:
			if err := v.validateGuest(req.GuestRequest, f); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *RequestValidator) validateLogin(req models.LoginRequest) error {
	if blank(req.Email) || req.Password == "" {
		return ErrCredentialsRequired
	}
	return nil
}

func (v *RequestValidator) validateUpdate(req models.UserUpdateRequest) error {
	if req.Empty() {
		return ErrNoFieldsToUpdate
	}

	named := []struct {
		field string
		value *string
	}{
		{FieldName, req.Name},
		{FieldStatus, req.Status},
		{FieldConfusionArea, req.ConfusionArea},
		{FieldStruggleType, req.StruggleType},
	}
	for _, n := range named {
		if n.value != nil && blank(*n.value) {
			return invalidError(n.field, "cannot be empty")
		}
	}

	if req.JourneyDays != nil {
		return validateJourneyDays(*req.JourneyDays, false)
	}

	return nil
}

// validateJourneyDays accepts 1..MaxJourneyDays, and zero when the value is
// optional.
func validateJourneyDays(days int, optional bool) error {
	if optional && days == 0 {
		return nil
	}
	if days < 1 || days > MaxJourneyDays {
		return invalidError(FieldJourneyDays, fmt.Sprintf("must be between 1 and %d", MaxJourneyDays))
	}
	return nil
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func orDefault(fields, defaults []string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}
