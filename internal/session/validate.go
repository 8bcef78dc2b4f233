package session

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const MinPasswordLength = 6

var (
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("account already exists")
)

// FieldError is a validation failure carrying the message the form shows.
type FieldError struct {
	Msg string
}

func (e *FieldError) Error() string { return e.Msg }

func (e *FieldError) Unwrap() error { return ErrValidation }

var (
	errMissingFields    = &FieldError{Msg: "please fill in all fields"}
	errPasswordTooShort = &FieldError{Msg: fmt.Sprintf("password must be at least %d characters long", MinPasswordLength)}
	errPasswordMismatch = &FieldError{Msg: "passwords do not match"}
)

// Reason returns the user-facing text of a validation error.
func Reason(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Msg
	}
	return "invalid input"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type loginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type registerInput struct {
	Name         string `validate:"required"`
	Email        string `validate:"required"`
	Password     string `validate:"required,min=6"`
	Confirmation string `validate:"required"`
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}
	// a missing field wins over a short password
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return errMissingFields
		}
	}
	for _, fe := range verrs {
		if fe.Tag() == "min" {
			return errPasswordTooShort
		}
	}
	return fmt.Errorf("%v: %w", err, ErrValidation)
}

// ConfirmPassword is the caller-side confirmation check of the register form.
func ConfirmPassword(password, confirmation string) error {
	if password != confirmation {
		return errPasswordMismatch
	}
	return nil
}

// ValidateRegistration runs the register form checks in the order the form
// reports them: presence, confirmation, length.
func ValidateRegistration(name, email, password, confirmation string) error {
	err := check(registerInput{Name: name, Email: email, Password: password, Confirmation: confirmation})
	if errors.Is(err, errMissingFields) {
		return err
	}
	if cErr := ConfirmPassword(password, confirmation); cErr != nil {
		return cErr
	}
	return err
}
