package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Los errores se reportan con el nombre JSON del campo.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate valida una estructura usando los tags `validate`.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors convierte validator.ValidationErrors en un mapa campo → mensaje legible.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Largo mínimo %s", e.Param())
		}
		return fmt.Sprintf("Debe ser mayor o igual que %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Largo máximo %s", e.Param())
		}
		return fmt.Sprintf("Debe ser menor o igual que %s", e.Param())
	case "gt":
		return fmt.Sprintf("Debe ser mayor que %s", e.Param())
	case "gte":
		return fmt.Sprintf("Debe ser mayor o igual que %s", e.Param())
	case "oneof":
		return fmt.Sprintf("Debe ser uno de: %s", e.Param())
	default:
		return fmt.Sprintf("Validación fallida en '%s'", e.Tag())
	}
}
