package repository

import (
	"context"

	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryRepository puerto de persistencia para lotes producidos (usable con pool o tx).
type InventoryRepository interface {
	// ListActive devuelve los lotes con stock_grams > 0, más recientes primero.
	ListActive(ctx context.Context) ([]*entity.InventoryItem, error)
	// GetForUpdate obtiene el lote bloqueando la fila. Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// UpdateStatus reclasifica el lote. domain.ErrNotFound si no existe.
	UpdateStatus(ctx context.Context, id string, status entity.StockStatus) error
	// Discard deja masa y porciones en 0 y el estado en crítico en una sola escritura.
	Discard(ctx context.Context, id string) error
}

// IngredientRepository puerto de persistencia para materia prima.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	// List devuelve el conjunto completo, ordenado por nombre.
	List(ctx context.Context) ([]*entity.Ingredient, error)
	// GetForUpdate devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error)
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
}
