package api

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var dniPattern = regexp.MustCompile(`^\d{8}$`)

// ValidateDNIRequest is the body of POST /api/validate-dni.
type ValidateDNIRequest struct {
	DNI string `json:"dni" validate:"required,dni"`
}

// Normalize trims the fields prior to validation.
func (r *ValidateDNIRequest) Normalize() {
	r.DNI = strings.TrimSpace(r.DNI)
}

// Validator wraps go-playground/validator with the request rules of this API
// and reports failures keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the custom dni rule registered.
func NewValidator() *Validator {
	validate := validator.New()

	_ = validate.RegisterValidation("dni", func(fl validator.FieldLevel) bool {
		return dniPattern.MatchString(fl.Field().String())
	})

	// Use JSON field names in validation error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: validate}
}

// Validate returns field-level messages, or nil when the value is valid.
func (v *Validator) Validate(i interface{}) map[string][]string {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"": {err.Error()}}
	}

	out := make(map[string][]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "dni":
		return "must be exactly 8 digits"
	default:
		return "is invalid"
	}
}
