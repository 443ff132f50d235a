package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/panaderia-ops/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate revisa las etiquetas `validate` antes de intentar cualquier escritura.
// Los fallos se reportan como domain.ErrInvalidInput con el detalle del campo.
func Validate(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, describe(err))
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("campo %s no cumple %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("campo %s no cumple %s", fe.Field(), fe.Tag())
}
