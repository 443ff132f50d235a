package dto

import "github.com/shopspring/decimal"

// DaySummaryDTO KPIs del día en curso (desde la medianoche local).
// AvgTicket = Revenue / Count, o 0 si no hubo ventas.
type DaySummaryDTO struct {
	Date        string          `json:"date"` // YYYY-MM-DD local
	Revenue     decimal.Decimal `json:"revenue"`
	Count       int             `json:"count"`
	AvgTicket   decimal.Decimal `json:"avg_ticket"`
	ClosedCount int             `json:"closed_count"` // cajas cerradas hoy
}

// SalesChartPointDTO un bucket diario del gráfico de 7 días.
type SalesChartPointDTO struct {
	Date  string          `json:"date"`  // clave calendario local, ej: "2026-03-01"
	Label string          `json:"label"` // ej: "dom 1"
	Total decimal.Decimal `json:"total"`
}
