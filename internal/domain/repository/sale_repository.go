package repository

import (
	"context"
	"time"

	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
)

// SaleRepository lectura de ventas (la inserción la hace el flujo de POS, fuera del motor).
type SaleRepository interface {
	// ListSince devuelve las ventas con sold_at >= since, de la más antigua a la más reciente.
	ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error)
}

// RegisterSessionRepository lectura externa de sesiones de caja.
type RegisterSessionRepository interface {
	// CountClosedSince cuenta las cajas cerradas con closed_at >= since.
	CountClosedSince(ctx context.Context, since time.Time) (int, error)
}
