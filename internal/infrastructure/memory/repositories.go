package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/inventory"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

var (
	_ repository.SaleRepository            = (*SaleRepo)(nil)
	_ repository.RegisterSessionRepository = (*RegisterSessionRepo)(nil)
	_ repository.InventoryRepository       = (*InventoryRepo)(nil)
	_ repository.IngredientRepository      = (*IngredientRepo)(nil)
	_ repository.AlertRepository           = (*AlertRepo)(nil)
	_ repository.CRMMessageRepository      = (*CRMMessageRepo)(nil)
	_ repository.DiscountRepository        = (*DiscountRepo)(nil)
)

// Repositorios por familia sobre el mismo Ledger.
type (
	SaleRepo            struct{ l *Ledger }
	RegisterSessionRepo struct{ l *Ledger }
	InventoryRepo       struct{ l *Ledger }
	IngredientRepo      struct{ l *Ledger }
	AlertRepo           struct{ l *Ledger }
	CRMMessageRepo      struct{ l *Ledger }
	DiscountRepo        struct{ l *Ledger }
)

func (l *Ledger) Sales() *SaleRepo                       { return &SaleRepo{l} }
func (l *Ledger) RegisterSessions() *RegisterSessionRepo { return &RegisterSessionRepo{l} }
func (l *Ledger) Inventory() *InventoryRepo              { return &InventoryRepo{l} }
func (l *Ledger) Ingredients() *IngredientRepo           { return &IngredientRepo{l} }
func (l *Ledger) Alerts() *AlertRepo                     { return &AlertRepo{l} }
func (l *Ledger) CRMMessages() *CRMMessageRepo           { return &CRMMessageRepo{l} }
func (l *Ledger) Discounts() *DiscountRepo               { return &DiscountRepo{l} }

// ── sales / register_sessions ──────────────────────────────────────────────

func (r *SaleRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilySales, "ListSince"); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.ReadFailure(domain.FamilySales, "ListSince", err)
	}
	out := make([]*entity.Sale, 0, len(r.l.sales))
	for _, s := range r.l.sales {
		if s.SoldAt.Before(since) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SoldAt.Before(out[j].SoldAt) })
	return out, nil
}

func (r *RegisterSessionRepo) CountClosedSince(ctx context.Context, since time.Time) (int, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilyRegisterSessions, "CountClosedSince"); err != nil {
		return 0, err
	}
	n := 0
	for _, s := range r.l.sessions {
		if s.ClosedAt != nil && !s.ClosedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// ── inventory ──────────────────────────────────────────────────────────────

func (r *InventoryRepo) ListActive(ctx context.Context) ([]*entity.InventoryItem, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilyInventory, "ListActive"); err != nil {
		return nil, err
	}
	out := make([]*entity.InventoryItem, 0, len(r.l.items))
	for _, it := range r.l.items {
		if inventory.IsActive(it) {
			out = append(out, r.l.itemView(it))
		}
	}
	sortedByTimeDesc(out, func(it *entity.InventoryItem) time.Time { return it.ProducedAt })
	return out, nil
}

func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilyInventory, "GetForUpdate"); err != nil {
		return nil, err
	}
	it, ok := r.l.items[id]
	if !ok {
		return nil, nil
	}
	return r.l.itemView(it), nil
}

func (r *InventoryRepo) UpdateStatus(ctx context.Context, id string, status entity.StockStatus) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if err := r.l.writeErr(domain.FamilyInventory, "UpdateStatus"); err != nil {
		return err
	}
	it, ok := r.l.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Status = status
	return nil
}

func (r *InventoryRepo) Discard(ctx context.Context, id string) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if err := r.l.writeErr(domain.FamilyInventory, "Discard"); err != nil {
		return err
	}
	it, ok := r.l.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	inventory.ApplyDiscard(it)
	return nil
}

// ── ingredients ────────────────────────────────────────────────────────────

func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if err := r.l.writeErr(domain.FamilyIngredients, "Create"); err != nil {
		return err
	}
	for _, existing := range r.l.ingredients {
		if strings.EqualFold(existing.Name, ing.Name) {
			return domain.ErrConflict
		}
	}
	r.l.ingredients[ing.ID] = copyIngredient(ing)
	return nil
}

func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilyIngredients, "List"); err != nil {
		return nil, err
	}
	out := make([]*entity.Ingredient, 0, len(r.l.ingredients))
	for _, ing := range r.l.ingredients {
		out = append(out, copyIngredient(ing))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *IngredientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilyIngredients, "GetForUpdate"); err != nil {
		return nil, err
	}
	ing, ok := r.l.ingredients[id]
	if !ok {
		return nil, nil
	}
	return copyIngredient(ing), nil
}

func (r *IngredientRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if err := r.l.writeErr(domain.FamilyIngredients, "UpdateQuantity"); err != nil {
		return err
	}
	ing, ok := r.l.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	ing.StockQuantity = quantity
	ing.UpdatedAt = r.l.now()
	return nil
}

// ── alerts ─────────────────────────────────────────────────────────────────

func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if err := r.l.writeErr(domain.FamilyAlerts, "Create"); err != nil {
		return err
	}
	if _, ok := r.l.recipes[a.RecipeID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.l.alerts[a.ID] = &cp
	return nil
}

func (r *AlertRepo) ListActive(ctx context.Context) ([]*entity.Alert, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilyAlerts, "ListActive"); err != nil {
		return nil, err
	}
	out := make([]*entity.Alert, 0, len(r.l.alerts))
	for _, a := range r.l.alerts {
		if !a.Resolved {
			out = append(out, r.l.alertView(a))
		}
	}
	sortedByTimeDesc(out, func(a *entity.Alert) time.Time { return a.CreatedAt })
	return out, nil
}

func (r *AlertRepo) CountActive(ctx context.Context) (int, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilyAlerts, "CountActive"); err != nil {
		return 0, err
	}
	n := 0
	for _, a := range r.l.alerts {
		if !a.Resolved {
			n++
		}
	}
	return n, nil
}

func (r *AlertRepo) GetForUpdate(ctx context.Context, id string) (*entity.Alert, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilyAlerts, "GetForUpdate"); err != nil {
		return nil, err
	}
	a, ok := r.l.alerts[id]
	if !ok {
		return nil, nil
	}
	return r.l.alertView(a), nil
}

func (r *AlertRepo) MarkResolved(ctx context.Context, id, actionTaken string, at time.Time) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if err := r.l.writeErr(domain.FamilyAlerts, "MarkResolved"); err != nil {
		return err
	}
	a, ok := r.l.alerts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Resolved {
		return domain.ErrConflict
	}
	resolvedAt := at
	action := actionTaken
	a.Resolved = true
	a.ResolvedAt = &resolvedAt
	a.ActionTaken = &action
	return nil
}

// ── crm_messages / influence_discounts ─────────────────────────────────────

func (r *CRMMessageRepo) Create(ctx context.Context, msg *entity.CRMMessage) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if err := r.l.writeErr(domain.FamilyCRMMessages, "Create"); err != nil {
		return err
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	cp := *msg
	r.l.messages = append(r.l.messages, &cp)
	return nil
}

func (r *CRMMessageRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.CRMMessage, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilyCRMMessages, "ListByCustomer"); err != nil {
		return nil, err
	}
	out := make([]*entity.CRMMessage, 0)
	for _, m := range r.l.messages {
		if m.CustomerID == customerID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sortedByTimeDesc(out, func(m *entity.CRMMessage) time.Time { return m.CreatedAt })
	return out, nil
}

func (r *DiscountRepo) Create(ctx context.Context, d *entity.InfluenceDiscount) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if err := r.l.writeErr(domain.FamilyDiscounts, "Create"); err != nil {
		return err
	}
	for _, existing := range r.l.discounts {
		if strings.EqualFold(existing.Code, d.Code) {
			return domain.ErrConflict
		}
	}
	cp := *d
	r.l.discounts = append(r.l.discounts, &cp)
	return nil
}

func (r *DiscountRepo) List(ctx context.Context) ([]*entity.InfluenceDiscount, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if err := r.l.readErr(domain.FamilyDiscounts, "List"); err != nil {
		return nil, err
	}
	out := make([]*entity.InfluenceDiscount, 0, len(r.l.discounts))
	for _, d := range r.l.discounts {
		cp := *d
		out = append(out, &cp)
	}
	sortedByTimeDesc(out, func(d *entity.InfluenceDiscount) time.Time { return d.CreatedAt })
	return out, nil
}
