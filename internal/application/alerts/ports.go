package alerts

import (
	"context"

	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

// TxRunner transacción sobre la familia de alertas (bloqueo de fila + guardia resolved = false).
type TxRunner interface {
	RunAlerts(ctx context.Context, fn func(alertRepo repository.AlertRepository) error) error
}
