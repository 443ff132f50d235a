package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/inventory"
)

func ingredient(stock, min int64) *entity.Ingredient {
	return &entity.Ingredient{
		Name:          "harina",
		StockQuantity: decimal.NewFromInt(stock),
		MinStock:      decimal.NewFromInt(min),
	}
}

func TestIsLow_Escenarios(t *testing.T) {
	assert.True(t, inventory.IsLow(ingredient(5, 10)), "5 <= 10 con mínimo rastreado")
	assert.True(t, inventory.IsLow(ingredient(10, 10)), "el límite es inclusivo")
	assert.False(t, inventory.IsLow(ingredient(11, 10)))
	assert.False(t, inventory.IsLow(ingredient(5, 0)), "mínimo 0 = sin seguimiento")
	assert.False(t, inventory.IsLow(nil))
}

// Con mínimo en cero nunca hay stock bajo, sea cual sea la cantidad.
func TestIsLow_MinimoCeroNuncaEsBajo(t *testing.T) {
	for _, q := range []int64{-3, 0, 1, 50, 10_000} {
		assert.False(t, inventory.IsLow(ingredient(q, 0)), "cantidad %d", q)
	}
}

func TestCountLow_RecorreElConjuntoCompleto(t *testing.T) {
	set := []*entity.Ingredient{ingredient(5, 10), ingredient(0, 0), ingredient(2, 2), ingredient(30, 10)}
	assert.Equal(t, 2, inventory.CountLow(set))
	assert.Len(t, inventory.FilterLow(set), 2)
	assert.Equal(t, 0, inventory.CountLow(nil))
}

func TestApplyDiscard_Idempotente(t *testing.T) {
	slices := 8
	item := &entity.InventoryItem{
		ID:              "lote-1",
		StockGrams:      decimal.NewFromInt(500),
		SlicesAvailable: &slices,
		Status:          entity.StatusNormal,
	}

	inventory.ApplyDiscard(item)
	first := *item
	firstSlices := *item.SlicesAvailable

	inventory.ApplyDiscard(item)

	assert.True(t, item.StockGrams.IsZero())
	require.NotNil(t, item.SlicesAvailable)
	assert.Equal(t, 0, *item.SlicesAvailable)
	assert.Equal(t, entity.StatusCritical, item.Status)
	assert.Equal(t, "critico", string(item.Status))
	assert.True(t, first.StockGrams.Equal(item.StockGrams))
	assert.Equal(t, firstSlices, *item.SlicesAvailable)
	assert.Equal(t, first.Status, item.Status)
	assert.False(t, inventory.IsActive(item))
}

func TestFilterActive_ExcluyeLotesEnCero(t *testing.T) {
	items := []*entity.InventoryItem{
		{ID: "a", StockGrams: decimal.NewFromInt(200)},
		{ID: "b", StockGrams: decimal.Zero},
		{ID: "c", StockGrams: decimal.RequireFromString("0.5")},
	}
	active := inventory.FilterActive(items)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "c", active[1].ID)
}

func TestParseStatus(t *testing.T) {
	st, err := inventory.ParseStatus("atencion")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAttention, st)

	_, err = inventory.ParseStatus("agotado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement(t *testing.T) {
	next, err := inventory.ApplyMovement(decimal.NewFromInt(10), decimal.NewFromInt(-4))
	require.NoError(t, err)
	assert.True(t, next.Equal(decimal.NewFromInt(6)))

	_, err = inventory.ApplyMovement(decimal.NewFromInt(3), decimal.NewFromInt(-4))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
