package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas operativas sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `a.id, a.recipe_id, COALESCE(r.name, ''), a.resolved, a.created_at, a.resolved_at, a.action_taken`

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	if err := row.Scan(&a.ID, &a.RecipeID, &a.RecipeName, &a.Resolved, &a.CreatedAt, &a.ResolvedAt, &a.ActionTaken); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta una alerta activa. domain.ErrNotFound si la receta no existe.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	const query = `INSERT INTO alerts (id, recipe_id, resolved, created_at) VALUES ($1, $2, false, $3)`
	if _, err := r.q.Exec(ctx, query, a.ID, a.RecipeID, a.CreatedAt); err != nil {
		return writeError(domain.FamilyAlerts, "Create", err)
	}
	return nil
}

// ListActive alertas sin resolver con el nombre de la receta, más nuevas primero.
func (r *AlertRepo) ListActive(ctx context.Context) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + `
		FROM alerts a
		LEFT JOIN recipes r ON r.id = a.recipe_id
		WHERE a.resolved = false
		ORDER BY a.created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, domain.ReadFailure(domain.FamilyAlerts, "ListActive", err)
	}
	defer rows.Close()

	var out []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, domain.ReadFailure(domain.FamilyAlerts, "ListActive", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ReadFailure(domain.FamilyAlerts, "ListActive", err)
	}
	return out, nil
}

// CountActive cuenta sin traer filas.
func (r *AlertRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM alerts WHERE resolved = false`).Scan(&n); err != nil {
		return 0, domain.ReadFailure(domain.FamilyAlerts, "CountActive", err)
	}
	return n, nil
}

// GetForUpdate bloquea la fila de la alerta. nil, nil si no existe.
func (r *AlertRepo) GetForUpdate(ctx context.Context, id string) (*entity.Alert, error) {
	query := `SELECT ` + alertColumns + `
		FROM alerts a
		LEFT JOIN recipes r ON r.id = a.recipe_id
		WHERE a.id = $1
		FOR UPDATE OF a`
	a, err := scanAlert(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.ReadFailure(domain.FamilyAlerts, "GetForUpdate", err)
	}
	return a, nil
}

// MarkResolved fija resolved, resolved_at y action_taken en un solo UPDATE con guardia resolved = false.
// Si no afectó filas distingue entre inexistente (ErrNotFound) y ya resuelta (ErrConflict).
func (r *AlertRepo) MarkResolved(ctx context.Context, id, actionTaken string, at time.Time) error {
	const query = `
		UPDATE alerts
		SET resolved = true, resolved_at = $2, action_taken = $3
		WHERE id = $1 AND resolved = false`
	tag, err := r.q.Exec(ctx, query, id, at, actionTaken)
	if err != nil {
		return writeError(domain.FamilyAlerts, "MarkResolved", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM alerts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return domain.ReadFailure(domain.FamilyAlerts, "MarkResolved", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}
