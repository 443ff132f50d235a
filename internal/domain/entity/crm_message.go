package entity

import "time"

// CRMMessage mensaje enviado a un cliente (WhatsApp, email...).
type CRMMessage struct {
	ID         string
	CustomerID string
	Channel    string
	Body       string
	CreatedAt  time.Time
}
