package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// requestValidator plugs go-playground/validator into c.Validate and turns
// its field errors into one validation message.
type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns the validator assigned to echo.Echo.Validator.
func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &requestValidator{v: v}
}

// jsonFieldName reports fields by their json name so messages match the
// request body the client sent.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "", "-":
		return f.Name
	default:
		return name
	}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	msgs := make([]string, len(fields))
	for i, fe := range fields {
		msgs[i] = describe(fe)
	}
	return domain.Validation(strings.Join(msgs, "; "))
}

var ruleText = map[string]string{
	"gt":    "must be greater than %s",
	"gte":   "must be at least %s",
	"lte":   "must be at most %s",
	"oneof": "must be one of: %s",
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch tag := fe.Tag(); tag {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		if text, ok := ruleText[tag]; ok {
			return field + " " + fmt.Sprintf(text, fe.Param())
		}
		return fmt.Sprintf("%s is invalid (%s)", field, tag)
	}
}
