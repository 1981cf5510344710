package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Violations maps a form field name to a violation code.
// Codes double as i18n keys so templates can render them directly.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records code for field unless the field already has a violation.
func (v Violations) Add(field, code string) {
	if _, exists := v[field]; !exists {
		v[field] = code
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report violations under the form field name rather than the Go field name
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(f.Name)
			}
			return name
		})
	})
	return validate
}

// Struct validates s against its `validate` tags and returns the violations.
// A non-nil error is returned only when s cannot be validated at all.
func Struct(s any) (Violations, error) {
	v := Violations{}
	err := engine().Struct(s)
	if err == nil {
		return v, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}
	for _, fe := range fieldErrs {
		v.Add(fe.Field(), code(fe))
	}
	return v, nil
}

func code(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "required"
	case "email":
		return "invalid_email"
	case "max":
		return "too_long"
	case "min":
		return "too_short"
	case "oneof":
		return "invalid_choice"
	default:
		return "invalid"
	}
}
