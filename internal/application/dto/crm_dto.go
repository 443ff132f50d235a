package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMessageRequest body de POST /api/crm/messages.
type CreateMessageRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Channel    string `json:"channel" validate:"required,oneof=whatsapp email sms"`
	Body       string `json:"body" validate:"required,max=2000"`
}

// MessageResponse mensaje CRM.
type MessageResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Channel    string    `json:"channel"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateDiscountRequest body de POST /api/discounts.
type CreateDiscountRequest struct {
	Code           string          `json:"code" validate:"required,alphanum,max=32"`
	InfluencerName string          `json:"influencer_name" validate:"required"`
	Percentage     decimal.Decimal `json:"percentage"`
}

// DiscountResponse cupón de influenciador.
type DiscountResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	InfluencerName string          `json:"influencer_name"`
	Percentage     decimal.Decimal `json:"percentage"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
}
