// Package form binds and validates the site's HTML form submissions.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a form field name to a user-facing message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// Validator implements echo.Validator and reports failures as Errors keyed by form field name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a validator that names fields after their form tags.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate trims the submitted strings in place, then checks the struct's rules.
func (v *Validator) Validate(i interface{}) error {
	Trim(i)
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

// AsErrors extracts field errors from a Validate result. The second value is false when err
// is not a validation failure.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	case "numeric":
		return "Must be a number."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}

// Trim strips surrounding whitespace from every string field of the struct pointed to by i,
// except fields tagged trim:"false".
func Trim(i interface{}) {
	rv := reflect.ValueOf(i)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return
	}
	rv = rv.Elem()
	rt := rv.Type()
	for n := 0; n < rv.NumField(); n++ {
		field := rv.Field(n)
		if field.Kind() != reflect.String || !field.CanSet() || rt.Field(n).Tag.Get("trim") == "false" {
			continue
		}
		field.SetString(strings.TrimSpace(field.String()))
	}
}
