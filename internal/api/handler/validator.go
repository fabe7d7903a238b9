package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator plugs go-playground/validator into echo.Echo.Validator.
type requestValidator struct {
	check *validator.Validate
}

func NewValidator() *requestValidator {
	return &requestValidator{check: validator.New()}
}

// Validate runs the struct tags and flattens any violations into a single
// human-readable error.
func (rv *requestValidator) Validate(i any) error {
	err := rv.check.Struct(i)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return err
	}

	var b strings.Builder
	for i, fe := range violations {
		if i > 0 {
			b.WriteString("; ")
		}
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fmt.Fprintf(&b, "%s is required", field)
		case "email":
			fmt.Fprintf(&b, "%s must be a valid email", field)
		case "oneof":
			fmt.Fprintf(&b, "%s must be one of: %s", field, fe.Param())
		default:
			fmt.Fprintf(&b, "%s failed validation (%s)", field, fe.Tag())
		}
	}
	return errors.New(b.String())
}
