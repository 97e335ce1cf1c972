package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// std is the process-wide validator, shared between the echo binding
// path and direct struct validation in services.
var std = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a struct against its validate tags.
func Struct(i interface{}) error {
	return std.Struct(i)
}

type defaultValidator struct{ v *validator.Validate }

func (d *defaultValidator) Validate(i interface{}) error {
	return d.v.Struct(i)
}

// New returns an echo.Validator implementation.
func New() echo.Validator {
	return &defaultValidator{v: std}
}
