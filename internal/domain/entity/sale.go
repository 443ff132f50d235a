package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta registrada por un punto de venta. Inmutable: el motor solo la lee.
type Sale struct {
	ID     string
	Total  decimal.Decimal // monto total, >= 0
	SoldAt time.Time
}
