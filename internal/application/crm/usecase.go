// Package crm expone las familias de paso (mensajes a clientes y cupones de
// influenciadores): alta y listado, sin lógica derivada.
package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

// DiscountsKey vista del listado de cupones.
var DiscountsKey = refresh.Key{Family: domain.FamilyDiscounts, View: "all"}

// MessagesKey clave parametrizada por cliente.
func MessagesKey(customerID string) refresh.Key {
	return refresh.Key{Family: domain.FamilyCRMMessages, View: "by_customer", Params: customerID}
}

// MessageUseCase mensajes CRM.
type MessageUseCase struct {
	repo  repository.CRMMessageRepository
	store *refresh.Store
	now   func() time.Time
}

// NewMessageUseCase construye el caso de uso.
func NewMessageUseCase(repo repository.CRMMessageRepository, store *refresh.Store) *MessageUseCase {
	return &MessageUseCase{repo: repo, store: store, now: time.Now}
}

// Create registra un mensaje.
func (uc *MessageUseCase) Create(ctx context.Context, in dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	msg := &entity.CRMMessage{
		ID:         uuid.New().String(),
		CustomerID: strings.TrimSpace(in.CustomerID),
		Channel:    in.Channel,
		Body:       in.Body,
		CreatedAt:  uc.now(),
	}
	if err := uc.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("crm.CreateMessage: %w", err)
	}
	uc.store.Invalidate(domain.FamilyCRMMessages)
	out := toMessageResponse(msg)
	return &out, nil
}

// ListByCustomer mensajes de un cliente, más nuevos primero.
func (uc *MessageUseCase) ListByCustomer(ctx context.Context, customerID string) ([]dto.MessageResponse, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, domain.ErrInvalidInput
	}
	return refresh.Load(ctx, uc.store, MessagesKey(customerID), refresh.OnInvalidate(), func(ctx context.Context) ([]dto.MessageResponse, error) {
		list, err := uc.repo.ListByCustomer(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("crm.ListByCustomer: %w", err)
		}
		out := make([]dto.MessageResponse, 0, len(list))
		for _, m := range list {
			out = append(out, toMessageResponse(m))
		}
		return out, nil
	})
}

// DiscountUseCase cupones de influenciadores.
type DiscountUseCase struct {
	repo  repository.DiscountRepository
	store *refresh.Store
	now   func() time.Time
	all   *refresh.View[[]dto.DiscountResponse]
}

// NewDiscountUseCase construye el caso de uso.
func NewDiscountUseCase(repo repository.DiscountRepository, store *refresh.Store) *DiscountUseCase {
	uc := &DiscountUseCase{repo: repo, store: store, now: time.Now}
	uc.all = refresh.NewView(store, DiscountsKey, refresh.OnInvalidate(), func(ctx context.Context) ([]dto.DiscountResponse, error) {
		list, err := repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("crm.ListDiscounts: %w", err)
		}
		out := make([]dto.DiscountResponse, 0, len(list))
		for _, d := range list {
			out = append(out, toDiscountResponse(d))
		}
		return out, nil
	})
	return uc
}

var hundred = decimal.NewFromInt(100)

// Create registra un cupón activo. El porcentaje va en (0, 100].
func (uc *DiscountUseCase) Create(ctx context.Context, in dto.CreateDiscountRequest) (*dto.DiscountResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !in.Percentage.IsPositive() || in.Percentage.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: porcentaje fuera de rango", domain.ErrInvalidInput)
	}
	d := &entity.InfluenceDiscount{
		ID:             uuid.New().String(),
		Code:           strings.ToUpper(in.Code),
		InfluencerName: strings.TrimSpace(in.InfluencerName),
		Percentage:     in.Percentage,
		Active:         true,
		CreatedAt:      uc.now(),
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("crm.CreateDiscount: %w", err)
	}
	uc.store.Invalidate(domain.FamilyDiscounts)
	out := toDiscountResponse(d)
	return &out, nil
}

// List cupones registrados.
func (uc *DiscountUseCase) List(ctx context.Context) ([]dto.DiscountResponse, error) {
	return uc.all.Get(ctx)
}

func toMessageResponse(m *entity.CRMMessage) dto.MessageResponse {
	return dto.MessageResponse{ID: m.ID, CustomerID: m.CustomerID, Channel: m.Channel, Body: m.Body, CreatedAt: m.CreatedAt}
}

func toDiscountResponse(d *entity.InfluenceDiscount) dto.DiscountResponse {
	return dto.DiscountResponse{
		ID:             d.ID,
		Code:           d.Code,
		InfluencerName: d.InfluencerName,
		Percentage:     d.Percentage,
		Active:         d.Active,
		CreatedAt:      d.CreatedAt,
	}
}
