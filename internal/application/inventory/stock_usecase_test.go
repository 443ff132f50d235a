package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/application/inventory"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
	"github.com/jhoicas/panaderia-ops/internal/infrastructure/memory"
)

func newStock(t *testing.T) (*inventory.StockUseCase, *memory.Ledger, *refresh.Store) {
	t.Helper()
	ledger := memory.NewLedger()
	store := refresh.NewStore(nil)
	uc := inventory.NewStockUseCase(memory.NewTxRunner(ledger), ledger.Inventory(), store)
	return uc, ledger, store
}

func seedCake(ledger *memory.Ledger, grams int64, slices int) *entity.InventoryItem {
	ledger.AddRecipe("rec-torta", "Torta de zanahoria")
	return ledger.AddInventoryItem(entity.InventoryItem{
		RecipeID:        "rec-torta",
		StockGrams:      decimal.NewFromInt(grams),
		SlicesAvailable: &slices,
		Status:          entity.StatusNormal,
		ProducedAt:      time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC),
	})
}

func TestDiscard_DejaLoteEnCeroYLoOcultaDeActivos(t *testing.T) {
	uc, ledger, _ := newStock(t)
	item := seedCake(ledger, 1200, 12)

	active, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Torta de zanahoria", active[0].RecipeName)

	got, err := uc.Discard(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, got.StockGrams.IsZero())
	require.NotNil(t, got.SlicesAvailable)
	assert.Equal(t, 0, *got.SlicesAvailable)
	assert.Equal(t, "critico", got.Status)

	// La vista se invalidó antes de volver: la siguiente lectura ya no lo muestra.
	active, err = uc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)

	// Sigue existiendo en el ledger.
	stored, err := ledger.Inventory().GetForUpdate(context.Background(), item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusCritical, stored.Status)
}

func TestDiscard_Idempotente(t *testing.T) {
	uc, ledger, _ := newStock(t)
	item := seedCake(ledger, 500, 4)

	first, err := uc.Discard(context.Background(), item.ID)
	require.NoError(t, err)
	second, err := uc.Discard(context.Background(), item.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.True(t, first.StockGrams.Equal(second.StockGrams))
	assert.Equal(t, *first.SlicesAvailable, *second.SlicesAvailable)
}

func TestDiscard_NoExiste(t *testing.T) {
	uc, _, _ := newStock(t)
	_, err := uc.Discard(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetStatus_ValidaElEnum(t *testing.T) {
	uc, ledger, _ := newStock(t)
	item := seedCake(ledger, 800, 8)

	_, err := uc.SetStatus(context.Background(), item.ID, dto.SetStatusRequest{Status: "agotado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.SetStatus(context.Background(), item.ID, dto.SetStatusRequest{Status: "atencion"})
	require.NoError(t, err)
	assert.Equal(t, "atencion", got.Status)
	assert.True(t, got.StockGrams.Equal(decimal.NewFromInt(800)), "reclasificar no toca la masa")

	_, err = uc.SetStatus(context.Background(), "otro", dto.SetStatusRequest{Status: "normal"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Fallos de escritura: la vista cacheada no se invalida ─────────────────────

type mockInventoryRepo struct{ mock.Mock }

func (m *mockInventoryRepo) ListActive(ctx context.Context) ([]*entity.InventoryItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*entity.InventoryItem)
	return items, args.Error(1)
}

func (m *mockInventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*entity.InventoryItem)
	return item, args.Error(1)
}

func (m *mockInventoryRepo) UpdateStatus(ctx context.Context, id string, status entity.StockStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockInventoryRepo) Discard(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type passthroughTx struct {
	items repository.InventoryRepository
}

func (p passthroughTx) Run(ctx context.Context, fn func(repository.InventoryRepository, repository.IngredientRepository) error) error {
	return fn(p.items, nil)
}

func TestDiscard_FalloDeEscrituraNoInvalida(t *testing.T) {
	repo := new(mockInventoryRepo)
	store := refresh.NewStore(nil)
	uc := inventory.NewStockUseCase(passthroughTx{items: repo}, repo, store)

	item := &entity.InventoryItem{ID: "lote-1", StockGrams: decimal.NewFromInt(300), Status: entity.StatusNormal}
	repo.On("ListActive", mock.Anything).Return([]*entity.InventoryItem{item}, nil).Once()
	repo.On("GetForUpdate", mock.Anything, "lote-1").Return(item, nil)
	repo.On("Discard", mock.Anything, "lote-1").
		Return(domain.WriteFailure(domain.FamilyInventory, "Discard", errors.New("connection refused")))

	_, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	gen := store.Generation(inventory.ActiveItemsKey)

	_, err = uc.Discard(context.Background(), "lote-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWriteFailure)

	assert.Equal(t, gen, store.Generation(inventory.ActiveItemsKey), "un fallo no debe invalidar")
	cached, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, cached, 1)
	repo.AssertExpectations(t)
}

// El estado es un campo explícito: un lote casi vacío sigue "normal" hasta que alguien lo reclasifique.
func TestListActive_NoReclasificaPorCantidad(t *testing.T) {
	uc, ledger, _ := newStock(t)
	seedCake(ledger, 3, 0)

	active, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "normal", active[0].Status)
}
