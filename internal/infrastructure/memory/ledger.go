// Package memory implementa el ledger completo en proceso: mismo contrato que el
// adaptador PostgreSQL, útil para demo, desarrollo (LEDGER_DRIVER=memory) y tests.
//
// Todas las lecturas devuelven copias; nada de lo que sale del ledger comparte
// memoria con su estado interno.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
)

// Ledger almacén en memoria, seguro para uso concurrente.
type Ledger struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializa las transacciones (equivalente a SELECT ... FOR UPDATE)

	sales       []*entity.Sale
	sessions    []*entity.RegisterSession
	recipes     map[string]string
	items       map[string]*entity.InventoryItem
	ingredients map[string]*entity.Ingredient
	alerts      map[string]*entity.Alert
	messages    []*entity.CRMMessage
	discounts   []*entity.InfluenceDiscount

	failures map[domain.Family]error
	now      func() time.Time
}

// NewLedger crea un ledger vacío.
func NewLedger() *Ledger {
	return &Ledger{
		recipes:     make(map[string]string),
		items:       make(map[string]*entity.InventoryItem),
		ingredients: make(map[string]*entity.Ingredient),
		alerts:      make(map[string]*entity.Alert),
		failures:    make(map[domain.Family]error),
		now:         time.Now,
	}
}

// Fail hace que toda operación sobre la familia falle con err (nil la restablece).
// Las lecturas se reportan como ReadFailure y las escrituras como WriteFailure.
func (l *Ledger) Fail(family domain.Family, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == nil {
		delete(l.failures, family)
		return
	}
	l.failures[family] = err
}

// SetClock reloj usado para created_at/updated_at.
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
}

func (l *Ledger) readErr(family domain.Family, op string) error {
	if err, ok := l.failures[family]; ok {
		return domain.ReadFailure(family, op, err)
	}
	return nil
}

func (l *Ledger) writeErr(family domain.Family, op string) error {
	if err, ok := l.failures[family]; ok {
		return domain.WriteFailure(family, op, err)
	}
	return nil
}

// ── Seed (lo que en producción escriben el POS, producción y el motor de reglas) ──

// AddRecipe registra el nombre visible de una receta.
func (l *Ledger) AddRecipe(id, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recipes[id] = name
}

// AddSale registra una venta del POS.
func (l *Ledger) AddSale(total decimal.Decimal, soldAt time.Time) *entity.Sale {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := &entity.Sale{ID: uuid.NewString(), Total: total, SoldAt: soldAt}
	l.sales = append(l.sales, s)
	cp := *s
	return &cp
}

// AddRegisterSession registra una sesión de caja (closedAt nil = abierta).
func (l *Ledger) AddRegisterSession(terminalID string, openedAt time.Time, closedAt *time.Time) *entity.RegisterSession {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := &entity.RegisterSession{ID: uuid.NewString(), TerminalID: terminalID, OpenedAt: openedAt, ClosedAt: closedAt}
	l.sessions = append(l.sessions, s)
	cp := *s
	return &cp
}

// AddInventoryItem registra un lote producido. Asigna ID si viene vacío.
func (l *Ledger) AddInventoryItem(item entity.InventoryItem) *entity.InventoryItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = entity.StatusNormal
	}
	stored := copyItem(&item)
	l.items[item.ID] = stored
	return l.itemView(stored)
}

// AddIngredient registra materia prima sin pasar por validación (seed).
func (l *Ledger) AddIngredient(ing entity.Ingredient) *entity.Ingredient {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ing.ID == "" {
		ing.ID = uuid.NewString()
	}
	stored := copyIngredient(&ing)
	l.ingredients[ing.ID] = stored
	return copyIngredient(stored)
}

// AddAlert registra una alerta activa con fecha explícita.
func (l *Ledger) AddAlert(recipeID string, createdAt time.Time) *entity.Alert {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := &entity.Alert{ID: uuid.NewString(), RecipeID: recipeID, CreatedAt: createdAt}
	l.alerts[a.ID] = a
	return l.alertView(a)
}

// ── Vistas y copias ─────────────────────────────────────────────────────────

func (l *Ledger) itemView(it *entity.InventoryItem) *entity.InventoryItem {
	cp := copyItem(it)
	cp.RecipeName = l.recipes[it.RecipeID]
	return cp
}

func (l *Ledger) alertView(a *entity.Alert) *entity.Alert {
	cp := *a
	cp.RecipeName = l.recipes[a.RecipeID]
	if a.ResolvedAt != nil {
		at := *a.ResolvedAt
		cp.ResolvedAt = &at
	}
	if a.ActionTaken != nil {
		txt := *a.ActionTaken
		cp.ActionTaken = &txt
	}
	return &cp
}

func copyItem(it *entity.InventoryItem) *entity.InventoryItem {
	cp := *it
	if it.SlicesAvailable != nil {
		n := *it.SlicesAvailable
		cp.SlicesAvailable = &n
	}
	return &cp
}

func copyIngredient(ing *entity.Ingredient) *entity.Ingredient {
	cp := *ing
	if ing.ExpiresAt != nil {
		at := *ing.ExpiresAt
		cp.ExpiresAt = &at
	}
	return &cp
}

func sortedByTimeDesc[T any](in []T, at func(T) time.Time) {
	sort.SliceStable(in, func(i, j int) bool { return at(in[i]).After(at(in[j])) })
}
