package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

var (
	_ repository.SaleRepository            = (*SaleRepo)(nil)
	_ repository.RegisterSessionRepository = (*RegisterSessionRepo)(nil)
)

// SaleRepo lectura de ventas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// ListSince ventas con created_at >= since en orden cronológico.
func (r *SaleRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error) {
	const query = `
		SELECT id, total, created_at
		FROM sales
		WHERE created_at >= $1
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, domain.ReadFailure(domain.FamilySales, "ListSince", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Total, &s.SoldAt); err != nil {
			return nil, domain.ReadFailure(domain.FamilySales, "ListSince", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ReadFailure(domain.FamilySales, "ListSince", err)
	}
	return out, nil
}

// RegisterSessionRepo lectura de sesiones de caja.
type RegisterSessionRepo struct {
	q Querier
}

// NewRegisterSessionRepository construye el adaptador.
func NewRegisterSessionRepository(q Querier) *RegisterSessionRepo {
	return &RegisterSessionRepo{q: q}
}

// CountClosedSince cuenta cajas con closed_at >= since.
func (r *RegisterSessionRepo) CountClosedSince(ctx context.Context, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM register_sessions WHERE closed_at IS NOT NULL AND closed_at >= $1`
	var n int
	if err := r.q.QueryRow(ctx, query, since).Scan(&n); err != nil {
		return 0, domain.ReadFailure(domain.FamilyRegisterSessions, "CountClosedSince", err)
	}
	return n, nil
}
