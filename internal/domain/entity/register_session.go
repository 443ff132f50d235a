package entity

import "time"

// RegisterSession sesión de caja de un terminal. ClosedAt nil = caja abierta.
type RegisterSession struct {
	ID         string
	TerminalID string
	OpenedAt   time.Time
	ClosedAt   *time.Time
}
