package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar el nombre JSON del campo, no el de Go.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("nospaces", noSpaces)
	return v
}

// noSpaces rechaza cadenas con cualquier espacio en blanco.
func noSpaces(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

// validateStruct valida los tags `validate` y devuelve un mensaje con el primer campo inválido.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &validationError{field: verrs[0].Field(), tag: verrs[0].Tag()}
	}
	return err
}

type validationError struct {
	field string
	tag   string
}

func (e *validationError) Error() string {
	switch e.tag {
	case "required":
		return fmt.Sprintf("%s es requerido", e.field)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", e.field)
	case "nospaces":
		return fmt.Sprintf("%s no puede contener espacios", e.field)
	case "min", "max":
		return fmt.Sprintf("%s tiene una longitud inválida", e.field)
	default:
		return fmt.Sprintf("%s es inválido", e.field)
	}
}
