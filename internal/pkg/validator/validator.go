// Package validator wraps the go-playground/validator library with
// thread-safe initialization and standardized error formatting. Structs are
// validated declaratively through `validate` tags, and failures are reported
// as a multi-error chain rooted at ErrValidation.
package validator

import (
	"errors"
	"fmt"
	"sync"

	gvalidator "github.com/go-playground/validator/v10"
)

// validate is the singleton instance of the go-playground validator.
var (
	validate         *gvalidator.Validate
	initValidateOnce sync.Once
)

// ErrValidation is returned as the first error when validation fails. It acts
// as a high-level indicator that one or more validation rules were violated.
var ErrValidation = errors.New("validation error")

// errStringFormat defines the format for individual validation error messages.
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

// Init initializes the validator once, enabling required-field validation on
// structs. It is safe to call Init multiple times.
func Init() {
	initValidateOnce.Do(func() {
		validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())
	})
}

// formatError transforms a raw validator error into a multi-error chain with
// human-readable messages. The first error in the chain is always
// ErrValidation.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidation}
	for _, validationErr := range validationErrors {
		var (
			field = validationErr.Field()
			tag   = validationErr.Tag()
			value = validationErr.Value()
		)

		errs = append(errs, fmt.Errorf(errStringFormat, field, value, tag))
	}

	return errors.Join(errs...)
}

// Validate checks whether the given struct satisfies its validation tags. It
// returns nil on success, or a combined error that includes ErrValidation and
// one formatted message per failing field.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
