package postgres

import (
	"context"

	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

var (
	_ repository.CRMMessageRepository = (*CRMMessageRepo)(nil)
	_ repository.DiscountRepository   = (*DiscountRepo)(nil)
)

// CRMMessageRepo mensajes a clientes.
type CRMMessageRepo struct {
	q Querier
}

func NewCRMMessageRepository(q Querier) *CRMMessageRepo { return &CRMMessageRepo{q: q} }

func (r *CRMMessageRepo) Create(ctx context.Context, m *entity.CRMMessage) error {
	const query = `INSERT INTO crm_messages (id, customer_id, channel, body, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, m.ID, m.CustomerID, m.Channel, m.Body, m.CreatedAt); err != nil {
		return writeError(domain.FamilyCRMMessages, "Create", err)
	}
	return nil
}

func (r *CRMMessageRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.CRMMessage, error) {
	const query = `
		SELECT id, customer_id, channel, body, created_at
		FROM crm_messages WHERE customer_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, domain.ReadFailure(domain.FamilyCRMMessages, "ListByCustomer", err)
	}
	defer rows.Close()

	var out []*entity.CRMMessage
	for rows.Next() {
		var m entity.CRMMessage
		if err := rows.Scan(&m.ID, &m.CustomerID, &m.Channel, &m.Body, &m.CreatedAt); err != nil {
			return nil, domain.ReadFailure(domain.FamilyCRMMessages, "ListByCustomer", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ReadFailure(domain.FamilyCRMMessages, "ListByCustomer", err)
	}
	return out, nil
}

// DiscountRepo cupones de influenciadores.
type DiscountRepo struct {
	q Querier
}

func NewDiscountRepository(q Querier) *DiscountRepo { return &DiscountRepo{q: q} }

func (r *DiscountRepo) Create(ctx context.Context, d *entity.InfluenceDiscount) error {
	const query = `
		INSERT INTO influence_discounts (id, code, influencer_name, percentage, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, d.ID, d.Code, d.InfluencerName, d.Percentage, d.Active, d.CreatedAt); err != nil {
		return writeError(domain.FamilyDiscounts, "Create", err)
	}
	return nil
}

func (r *DiscountRepo) List(ctx context.Context) ([]*entity.InfluenceDiscount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, code, influencer_name, percentage, active, created_at
		FROM influence_discounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.ReadFailure(domain.FamilyDiscounts, "List", err)
	}
	defer rows.Close()

	var out []*entity.InfluenceDiscount
	for rows.Next() {
		var d entity.InfluenceDiscount
		if err := rows.Scan(&d.ID, &d.Code, &d.InfluencerName, &d.Percentage, &d.Active, &d.CreatedAt); err != nil {
			return nil, domain.ReadFailure(domain.FamilyDiscounts, "List", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ReadFailure(domain.FamilyDiscounts, "List", err)
	}
	return out, nil
}
