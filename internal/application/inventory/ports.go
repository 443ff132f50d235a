package inventory

import (
	"context"

	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del ledger, pasando repositorios atados a esa tx.
// Garantiza que lectura (bloqueo de fila) y escritura de un descarte o movimiento sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryRepository,
		ingredientRepo repository.IngredientRepository,
	) error) error
}
