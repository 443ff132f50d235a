package crm_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-ops/internal/application/crm"
	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/infrastructure/memory"
)

func TestMessages_VistaPorCliente(t *testing.T) {
	ledger := memory.NewLedger()
	store := refresh.NewStore(nil)
	uc := crm.NewMessageUseCase(ledger.CRMMessages(), store)

	empty, err := uc.ListByCustomer(context.Background(), "cli-1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = uc.Create(context.Background(), dto.CreateMessageRequest{CustomerID: "cli-1", Channel: "whatsapp", Body: "Tu pedido está listo"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateMessageRequest{CustomerID: "cli-2", Channel: "email", Body: "Gracias"})
	require.NoError(t, err)

	list, err := uc.ListByCustomer(context.Background(), "cli-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "whatsapp", list[0].Channel)

	_, err = uc.Create(context.Background(), dto.CreateMessageRequest{CustomerID: "cli-1", Channel: "fax", Body: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ListByCustomer(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDiscounts_AltaYListado(t *testing.T) {
	ledger := memory.NewLedger()
	uc := crm.NewDiscountUseCase(ledger.Discounts(), refresh.NewStore(nil))

	d, err := uc.Create(context.Background(), dto.CreateDiscountRequest{Code: "pan10", InfluencerName: "Laura", Percentage: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "PAN10", d.Code)
	assert.True(t, d.Active)

	_, err = uc.Create(context.Background(), dto.CreateDiscountRequest{Code: "PAN10", InfluencerName: "Otro", Percentage: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(context.Background(), dto.CreateDiscountRequest{Code: "MAS", InfluencerName: "X", Percentage: decimal.NewFromInt(150)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
