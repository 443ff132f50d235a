package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient línea de stock de materia prima.
// MinStock = 0 significa "sin seguimiento de stock bajo".
type Ingredient struct {
	ID            string
	Name          string
	Unit          string // g, kg, ml, l, un
	UnitPrice     decimal.Decimal
	StockQuantity decimal.Decimal
	MinStock      decimal.Decimal
	ExpiresAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
