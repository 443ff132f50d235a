package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/domain"
)

func TestValidate_EstadoFueraDeLista(t *testing.T) {
	err := dto.Validate(dto.SetStatusRequest{Status: "agotado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "oneof")

	assert.NoError(t, dto.Validate(dto.SetStatusRequest{Status: "critico"}))
}

func TestValidate_AccionObligatoriaYAcotada(t *testing.T) {
	assert.ErrorIs(t, dto.Validate(dto.ResolveAlertRequest{}), domain.ErrInvalidInput)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	assert.ErrorIs(t, dto.Validate(dto.ResolveAlertRequest{ActionTaken: string(long)}), domain.ErrInvalidInput)
	assert.NoError(t, dto.Validate(dto.ResolveAlertRequest{ActionTaken: "se horneó otra tanda"}))
}

func TestValidate_FamiliasNoVacias(t *testing.T) {
	assert.Error(t, dto.Validate(dto.InvalidateRequest{}))
	assert.Error(t, dto.Validate(dto.InvalidateRequest{Families: []string{""}}))
	assert.NoError(t, dto.Validate(dto.InvalidateRequest{Families: []string{"sales"}}))
}
