package memory

import (
	"context"

	"github.com/jhoicas/panaderia-ops/internal/application/alerts"
	"github.com/jhoicas/panaderia-ops/internal/application/inventory"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ alerts.TxRunner    = (*TxRunner)(nil)
)

// TxRunner serializa las secciones lectura-decisión-escritura sobre el ledger en memoria.
// Las escrituras de cada callback son de una sola operación, así que no hay estado parcial que revertir.
type TxRunner struct {
	l *Ledger
}

// NewTxRunner construye el runner.
func NewTxRunner(l *Ledger) *TxRunner { return &TxRunner{l: l} }

// Run ejecuta fn con los repos de inventario e ingredientes.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryRepository,
	ingredientRepo repository.IngredientRepository,
) error) error {
	r.l.txMu.Lock()
	defer r.l.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.l.Inventory(), r.l.Ingredients())
}

// RunAlerts ejecuta fn con el repo de alertas.
func (r *TxRunner) RunAlerts(ctx context.Context, fn func(alertRepo repository.AlertRepository) error) error {
	r.l.txMu.Lock()
	defer r.l.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.l.Alerts())
}
