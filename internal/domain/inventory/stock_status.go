package inventory

import (
	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IsLow indica stock bajo de un ingrediente (servicio de dominio, función pura).
// StockBajo = StockActual <= Minimo  Y  Minimo > 0 (mínimo en 0 = sin seguimiento).
func IsLow(ing *entity.Ingredient) bool {
	if ing == nil {
		return false
	}
	return ing.MinStock.GreaterThan(decimal.Zero) && ing.StockQuantity.LessThanOrEqual(ing.MinStock)
}

// CountLow cuenta los ingredientes en stock bajo recorriendo el conjunto completo.
func CountLow(ings []*entity.Ingredient) int {
	n := 0
	for _, ing := range ings {
		if IsLow(ing) {
			n++
		}
	}
	return n
}

// FilterLow devuelve los ingredientes en stock bajo conservando el orden de entrada.
func FilterLow(ings []*entity.Ingredient) []*entity.Ingredient {
	out := make([]*entity.Ingredient, 0, len(ings))
	for _, ing := range ings {
		if IsLow(ing) {
			out = append(out, ing)
		}
	}
	return out
}

// IsActive un lote está en stock activo solo si le queda masa.
func IsActive(item *entity.InventoryItem) bool {
	return item != nil && item.StockGrams.GreaterThan(decimal.Zero)
}

// FilterActive excluye los lotes en cero (siguen existiendo en el ledger).
func FilterActive(items []*entity.InventoryItem) []*entity.InventoryItem {
	out := make([]*entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if IsActive(it) {
			out = append(out, it)
		}
	}
	return out
}

// ParseStatus valida un estado recibido desde fuera.
func ParseStatus(s string) (entity.StockStatus, error) {
	st := entity.StockStatus(s)
	if !st.Valid() {
		return "", domain.ErrInvalidInput
	}
	return st, nil
}

// ApplyDiscard deja el lote en masa 0, porciones 0 y estado crítico, sin importar el estado previo.
// Aplicarlo dos veces produce el mismo resultado que una.
func ApplyDiscard(item *entity.InventoryItem) {
	zero := 0
	item.StockGrams = decimal.Zero
	item.SlicesAvailable = &zero
	item.Status = entity.StatusCritical
}

// ApplyMovement suma delta (positivo = reposición, negativo = consumo) a la cantidad actual.
// domain.ErrInsufficientStock si el resultado quedaría negativo.
func ApplyMovement(current, delta decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(delta)
	if next.LessThan(decimal.Zero) {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}
