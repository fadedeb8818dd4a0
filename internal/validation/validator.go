package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Clark-Hu/movielib/internal/domain"
)

// Validator wraps the go-playground validator with the catalog's custom tags.
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single failed rule.
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a validator with the zipcode and rating tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("label"); name != "" {
			return name
		}
		return fld.Name
	})

	// Registration only fails on empty tags or nil funcs.
	_ = v.RegisterValidation("zipcode", validateZipCode)
	_ = v.RegisterValidation("rating", validateRating)

	return &Validator{validate: v}
}

// Struct validates a tagged struct.
func (v *Validator) Struct(i interface{}) error {
	return v.convert(v.validate.Struct(i))
}

// Var validates a single value against tag, e.g. Var(zip, "zipcode").
func (v *Validator) Var(value interface{}, tag string) error {
	return v.convert(v.validate.Var(value, tag))
}

func (v *Validator) convert(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: msgForTag(fe),
		})
	}
	return out
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()
	if field == "" {
		field = "Value"
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "zipcode":
		return fmt.Sprintf("%s is not a valid US zip code or Canadian postal code", field)
	case "rating":
		return fmt.Sprintf("%s must be from %d to %d", field, domain.MinRating, domain.MaxRating)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func validateZipCode(fl validator.FieldLevel) bool {
	return domain.ValidZipCode(fl.Field().String())
}

func validateRating(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return domain.ValidRating(int(fl.Field().Int()))
	default:
		return false
	}
}
