// Package alerts gestiona el ciclo de vida de las alertas operativas:
// se levantan activas, se resuelven una sola vez con la acción tomada y nunca se reactivan.
package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

// Claves de las vistas de alertas.
var (
	ActiveKey      = refresh.Key{Family: domain.FamilyAlerts, View: "active"}
	ActiveCountKey = refresh.Key{Family: domain.FamilyAlerts, View: "active_count"}
)

// UseCase lista, cuenta, levanta y resuelve alertas.
type UseCase struct {
	txRunner  TxRunner
	alertRepo repository.AlertRepository
	store     *refresh.Store
	now       func() time.Time

	active *refresh.View[[]dto.AlertDTO]
	count  *refresh.View[int]
}

// NewUseCase construye el caso de uso. badge es la política del contador (y de la lista, que alimenta el mismo panel).
func NewUseCase(txRunner TxRunner, alertRepo repository.AlertRepository, store *refresh.Store, badge refresh.Policy) *UseCase {
	uc := &UseCase{txRunner: txRunner, alertRepo: alertRepo, store: store, now: time.Now}
	uc.active = refresh.NewView(store, ActiveKey, badge, func(ctx context.Context) ([]dto.AlertDTO, error) {
		list, err := alertRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("alerts.ListActive: %w", err)
		}
		out := make([]dto.AlertDTO, 0, len(list))
		for _, a := range list {
			out = append(out, toAlertDTO(a))
		}
		return out, nil
	})
	uc.count = refresh.NewView(store, ActiveCountKey, badge, func(ctx context.Context) (int, error) {
		n, err := alertRepo.CountActive(ctx)
		if err != nil {
			return 0, fmt.Errorf("alerts.CountActive: %w", err)
		}
		return n, nil
	})
	return uc
}

// WithClock fija el reloj de resolved_at/created_at.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

func (uc *UseCase) ActiveView() *refresh.View[[]dto.AlertDTO] { return uc.active }
func (uc *UseCase) CountView() *refresh.View[int]             { return uc.count }

// ListActive alertas sin resolver, más nuevas primero.
func (uc *UseCase) ListActive(ctx context.Context) ([]dto.AlertDTO, error) {
	return uc.active.Get(ctx)
}

// CountActive badge de alertas.
func (uc *UseCase) CountActive(ctx context.Context) (int, error) {
	return uc.count.Get(ctx)
}

// Raise levanta una alerta activa sobre una receta (la invoca el disparador de reglas).
func (uc *UseCase) Raise(ctx context.Context, in dto.RaiseAlertRequest) (*dto.AlertDTO, error) {
	in.RecipeID = strings.TrimSpace(in.RecipeID)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	a := &entity.Alert{
		ID:        uuid.New().String(),
		RecipeID:  in.RecipeID,
		CreatedAt: uc.now(),
	}
	if err := uc.alertRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("alerts.Raise: %w", err)
	}

	uc.store.Invalidate(domain.FamilyAlerts)
	out := toAlertDTO(a)
	return &out, nil
}

// Resolve marca la alerta como resuelta con la acción tomada.
//
// Retorna:
//   - domain.ErrInvalidInput  si la acción está vacía o es demasiado larga.
//   - domain.ErrNotFound      si la alerta no existe.
//   - domain.ErrConflict      si ya estaba resuelta (no se sobrescriben resolved_at ni action_taken).
func (uc *UseCase) Resolve(ctx context.Context, id string, in dto.ResolveAlertRequest) (*dto.AlertDTO, error) {
	in.ActionTaken = strings.TrimSpace(in.ActionTaken)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	at := uc.now()
	var resolved *entity.Alert
	err := uc.txRunner.RunAlerts(ctx, func(alertRepo repository.AlertRepository) error {
		a, err := alertRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if a.Resolved {
			return domain.ErrConflict
		}
		if err := alertRepo.MarkResolved(ctx, id, in.ActionTaken, at); err != nil {
			return err
		}
		action := in.ActionTaken
		a.Resolved = true
		a.ResolvedAt = &at
		a.ActionTaken = &action
		resolved = a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("alerts.Resolve: %w", err)
	}

	uc.store.Invalidate(domain.FamilyAlerts)
	out := toAlertDTO(resolved)
	return &out, nil
}

func toAlertDTO(a *entity.Alert) dto.AlertDTO {
	return dto.AlertDTO{
		ID:          a.ID,
		RecipeID:    a.RecipeID,
		RecipeName:  a.RecipeName,
		Resolved:    a.Resolved,
		CreatedAt:   a.CreatedAt,
		ResolvedAt:  a.ResolvedAt,
		ActionTaken: a.ActionTaken,
	}
}
