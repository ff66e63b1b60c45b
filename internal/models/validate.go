package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("billdate", func(fl validator.FieldLevel) bool {
		return ValidDate(fl.Field().String())
	})
	_ = v.RegisterValidation("billtime", func(fl validator.FieldLevel) bool {
		normalized, ok := NormalizeTime(fl.Field().String())
		return ok && normalized == fl.Field().String()
	})
	return v
}

// Validate checks structural invariants of a bill received from outside the
// process: ids are present, currency codes are ISO 4217, and date/time are well-formed.
func (b *Bill) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("invalid bill: %w", err)
	}
	return nil
}

// Validate checks that a person has an id and a name.
func (p Person) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid person: %w", err)
	}
	if err := validate.Var(p.Name, "required"); err != nil {
		return fmt.Errorf("invalid person name: %w", err)
	}
	return nil
}
