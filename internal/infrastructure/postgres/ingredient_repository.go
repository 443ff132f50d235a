package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo materia prima sobre PostgreSQL.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador.
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, name, unit, unit_price, stock_quantity, min_stock, expires_at, created_at, updated_at`

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	err := row.Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.UnitPrice, &ing.StockQuantity, &ing.MinStock,
		&ing.ExpiresAt, &ing.CreatedAt, &ing.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// Create inserta la materia prima. domain.ErrConflict si el nombre ya existe.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `INSERT INTO ingredients (` + ingredientColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, ing.ID, ing.Name, ing.Unit, ing.UnitPrice, ing.StockQuantity, ing.MinStock,
		ing.ExpiresAt, ing.CreatedAt, ing.UpdatedAt)
	if err != nil {
		return writeError(domain.FamilyIngredients, "Create", err)
	}
	return nil
}

// List conjunto completo ordenado por nombre.
func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, domain.ReadFailure(domain.FamilyIngredients, "List", err)
	}
	defer rows.Close()

	var out []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, domain.ReadFailure(domain.FamilyIngredients, "List", err)
		}
		out = append(out, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ReadFailure(domain.FamilyIngredients, "List", err)
	}
	return out, nil
}

// GetForUpdate bloquea la fila. nil, nil si no existe.
func (r *IngredientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error) {
	ing, err := scanIngredient(r.q.QueryRow(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.ReadFailure(domain.FamilyIngredients, "GetForUpdate", err)
	}
	return ing, nil
}

// UpdateQuantity fija la cantidad resultante de un movimiento.
func (r *IngredientRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE ingredients SET stock_quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return writeError(domain.FamilyIngredients, "UpdateQuantity", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
