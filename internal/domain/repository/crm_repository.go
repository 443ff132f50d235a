package repository

import (
	"context"

	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
)

// CRMMessageRepository CRUD de paso para mensajes a clientes.
type CRMMessageRepository interface {
	Create(ctx context.Context, msg *entity.CRMMessage) error
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.CRMMessage, error)
}

// DiscountRepository CRUD de paso para cupones de influenciadores.
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.InfluenceDiscount) error
	List(ctx context.Context) ([]*entity.InfluenceDiscount, error)
}
