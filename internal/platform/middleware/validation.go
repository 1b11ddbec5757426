package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var defaultMessages = map[string]string{
	"required": "Field is required",
	"min":      "Value is too small",
	"max":      "Value is too large",
	"oneof":    "Value is not one of the allowed options",
}

// Validator adapts go-playground/validator to echo.Validator. Field names in
// errors are the JSON names.
type Validator struct {
	v        *validator.Validate
	messages map[string]string
}

// NewValidator creates a Validator with the default messages.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v, messages: defaultMessages}
}

// Validate implements echo.Validator. Failures become a 400 whose message
// lists every rejected field.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		msg := cv.messages[e.Tag()]
		if msg == "" {
			msg = e.Error()
		}
		out = append(out, ValidationError{Field: e.Field(), Message: msg})
	}
	return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{"errors": out})
}
