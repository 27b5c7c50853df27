// Package validation checks user input at the shell boundaries and collects
// configuration errors.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/resiliencere/leadsync/chaos"
)

// ErrInvalidInput wraps every lead validation failure.
var ErrInvalidInput = errors.New("invalid input")

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateLead checks a contact form submission.
func ValidateLead(in *chaos.LeadInput) error {
	if in == nil {
		return fmt.Errorf("%w: lead cannot be nil", ErrInvalidInput)
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)

	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Report the first failure only.
	for _, e := range validationErrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s characters", field, e.Param())
		case "max":
			return fmt.Errorf("%s: must not exceed %s characters", field, e.Param())
		case "email":
			return fmt.Errorf("%s: not a valid address", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
