// Package validation runs struct-tag validation and reports failures per field.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate

	isbnPattern = regexp.MustCompile(`^[0-9-]+$`)
)

// Error lists the fields that failed validation keyed by their field name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Validator returns the process-wide validator with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		_ = validate.RegisterValidation("isbn_digits", validateISBN)
		_ = validate.RegisterValidation("notblank", validateNotBlank)
		_ = validate.RegisterValidation("decimals", validateDecimals)
	})
	return validate
}

// Struct validates v and converts validator failures into *Error.
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return &Error{Fields: fields}
}

// Collect validates v and lets extra record rules that tags cannot express, such as
// decimal ranges. It returns nil when no field failed.
func Collect(v any, extra func(fields map[string]string)) error {
	fields := map[string]string{}
	if err := Struct(v); err != nil {
		found, ok := Fields(err)
		if !ok {
			return err
		}
		for name, msg := range found {
			fields[name] = msg
		}
	}
	if extra != nil {
		extra(fields)
	}
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}

// Fields reports the per-field failures carried by err, if any.
func Fields(err error) (map[string]string, bool) {
	var verr *Error
	if errors.As(err, &verr) && verr != nil {
		return verr.Fields, true
	}
	return nil, false
}

// ValidISBN accepts digits and hyphens with exactly 10 or 13 digits.
func ValidISBN(isbn string) bool {
	if !isbnPattern.MatchString(isbn) {
		return false
	}
	digits := len(isbn) - strings.Count(isbn, "-")
	return digits == 10 || digits == 13
}

func validateISBN(fl validator.FieldLevel) bool {
	return ValidISBN(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateDecimals bounds the fractional digits of a float field, decimals=N.
func validateDecimals(fl validator.FieldLevel) bool {
	places, err := strconv.Atoi(fl.Param())
	if err != nil || places < 0 {
		return false
	}
	scaled := fl.Field().Float() * math.Pow10(places)
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "isbn_digits":
		return "must contain 10 or 13 digits separated by optional hyphens"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "decimals":
		return fmt.Sprintf("must have at most %s decimal places", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
