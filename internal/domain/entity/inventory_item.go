package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus nivel de salud de un lote producido.
type StockStatus string

const (
	StatusNormal    StockStatus = "normal"
	StatusAttention StockStatus = "atencion"
	StatusCritical  StockStatus = "critico"
)

// Valid indica si el valor pertenece al enum.
func (s StockStatus) Valid() bool {
	switch s {
	case StatusNormal, StatusAttention, StatusCritical:
		return true
	}
	return false
}

// InventoryItem lote de un producto elaborado (torta, pan, etc.).
// Status es una clasificación explícita: solo cambia por SetStatus o por descarte.
// Nunca se borra; al descartarse queda en cero.
type InventoryItem struct {
	ID              string
	RecipeID        string
	RecipeName      string          // join de solo lectura para presentación
	StockGrams      decimal.Decimal // masa restante, >= 0
	SlicesAvailable *int            // nil si el producto se vende solo entero
	Status          StockStatus
	ProducedAt      time.Time
}
