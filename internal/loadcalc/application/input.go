package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	loadcalc "circuit-load/internal/loadcalc/domain"
)

var validate = validator.New()

// CircuitInput is a new-circuit request.
type CircuitInput struct {
	Name          string  `json:"name" validate:"required"`
	Voltage       float64 `json:"voltage" validate:"gt=0"`
	BreakerRating float64 `json:"breaker_rating" validate:"gt=0"`
}

// DeviceInput is a new-device request.
type DeviceInput struct {
	Name  string  `json:"name" validate:"required"`
	Watts float64 `json:"watts" validate:"gt=0"`
}

// Normalize trims the name and validates the input.
func (in *CircuitInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	return validateInput(in)
}

// Normalize trims the name and validates the input.
func (in *DeviceInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	return validateInput(in)
}

func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", loadcalc.ErrInvalidInput, err)
	}
	for _, e := range validationErrs {
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s is required", loadcalc.ErrInvalidInput, e.Field())
		case "gt":
			return fmt.Errorf("%w: %s must be greater than %s", loadcalc.ErrInvalidInput, e.Field(), e.Param())
		default:
			return fmt.Errorf("%w: %s failed %s", loadcalc.ErrInvalidInput, e.Field(), e.Tag())
		}
	}
	return loadcalc.ErrInvalidInput
}
