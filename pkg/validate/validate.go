package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// instancia única del validador; las reglas viven en los tags `validate` de los DTOs.
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un DTO contra sus tags `validate`.
func Struct(s any) error {
	return v.Struct(s)
}

// Message convierte el primer error de validación en un mensaje corto legible.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); !ok || len(verrs) == 0 {
		return "entrada inválida"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " es requerido"
	case "email":
		return field + " debe ser un email válido"
	case "min":
		return field + " debe tener al menos " + fe.Param() + " caracteres"
	case "max":
		return field + " excede el máximo de " + fe.Param()
	case "uuid":
		return field + " debe ser un UUID válido"
	case "oneof":
		return field + " debe ser uno de: " + fe.Param()
	default:
		return field + " es inválido"
	}
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		*target = verrs
		return true
	}
	return false
}
