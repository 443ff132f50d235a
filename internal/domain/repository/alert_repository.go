package repository

import (
	"context"
	"time"

	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
)

// AlertRepository puerto de persistencia para alertas operativas.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	// ListActive devuelve las alertas con resolved = false, más nuevas primero, con el nombre de la receta.
	ListActive(ctx context.Context) ([]*entity.Alert, error)
	// CountActive cuenta sin traer las filas completas.
	CountActive(ctx context.Context) (int, error)
	// GetForUpdate devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Alert, error)
	// MarkResolved fija resolved, resolved_at y action_taken juntos.
	// Solo actúa sobre alertas activas: domain.ErrConflict si ya estaba resuelta.
	MarkResolved(ctx context.Context, id, actionTaken string, at time.Time) error
}
