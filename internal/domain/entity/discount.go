package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InfluenceDiscount cupón de descuento asociado a un influenciador.
type InfluenceDiscount struct {
	ID             string
	Code           string
	InfluencerName string
	Percentage     decimal.Decimal
	Active         bool
	CreatedAt      time.Time
}
