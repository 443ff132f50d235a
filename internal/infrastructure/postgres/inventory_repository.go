package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo lotes producidos sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `
	i.id, i.recipe_id, COALESCE(r.name, ''), i.stock_grams, i.slices_available, i.status, i.produced_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var (
		it     entity.InventoryItem
		status string
	)
	if err := row.Scan(&it.ID, &it.RecipeID, &it.RecipeName, &it.StockGrams, &it.SlicesAvailable, &status, &it.ProducedAt); err != nil {
		return nil, err
	}
	it.Status = entity.StockStatus(status)
	return &it, nil
}

// ListActive lotes con stock_grams > 0, más recientes primero.
func (r *InventoryRepo) ListActive(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory_items i
		LEFT JOIN recipes r ON r.id = i.recipe_id
		WHERE i.stock_grams > 0
		ORDER BY i.produced_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, domain.ReadFailure(domain.FamilyInventory, "ListActive", err)
	}
	defer rows.Close()

	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, domain.ReadFailure(domain.FamilyInventory, "ListActive", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ReadFailure(domain.FamilyInventory, "ListActive", err)
	}
	return out, nil
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE). nil, nil si no existe.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory_items i
		LEFT JOIN recipes r ON r.id = i.recipe_id
		WHERE i.id = $1
		FOR UPDATE OF i`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.ReadFailure(domain.FamilyInventory, "GetForUpdate", err)
	}
	return it, nil
}

// UpdateStatus reclasifica el lote sin tocar masa ni porciones.
func (r *InventoryRepo) UpdateStatus(ctx context.Context, id string, status entity.StockStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE inventory_items SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return writeError(domain.FamilyInventory, "UpdateStatus", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Discard masa 0, porciones 0 y estado crítico en un único UPDATE.
func (r *InventoryRepo) Discard(ctx context.Context, id string) error {
	const query = `
		UPDATE inventory_items
		SET stock_grams = 0, slices_available = 0, status = $2
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, string(entity.StatusCritical))
	if err != nil {
		return writeError(domain.FamilyInventory, "Discard", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
