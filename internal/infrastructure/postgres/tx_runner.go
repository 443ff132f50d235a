package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/panaderia-ops/internal/application/alerts"
	"github.com/jhoicas/panaderia-ops/internal/application/inventory"
	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and alerts.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ alerts.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de inventario atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryRepository,
	ingredientRepo repository.IngredientRepository,
) error) error {
	return r.inTx(ctx, domain.FamilyInventory, func(q Querier) error {
		return fn(NewInventoryRepository(q), NewIngredientRepository(q))
	})
}

// RunAlerts inicia una transacción con el repo de alertas (para Resolve).
func (r *TxRunner) RunAlerts(ctx context.Context, fn func(alertRepo repository.AlertRepository) error) error {
	return r.inTx(ctx, domain.FamilyAlerts, func(q Querier) error {
		return fn(NewAlertRepository(q))
	})
}

func (r *TxRunner) inTx(ctx context.Context, family domain.Family, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.WriteFailure(family, "begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.WriteFailure(family, "commit", fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
