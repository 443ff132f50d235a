package dto

import "time"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ViewResponse envoltorio de toda vista derivada hacia la capa de presentación.
// Data queda en null si la vista está en estado de error.
type ViewResponse struct {
	Data      any            `json:"data"`
	IsLoading bool           `json:"is_loading"`
	Error     *ErrorResponse `json:"error"`
	FetchedAt *time.Time     `json:"fetched_at,omitempty"`
}

// InvalidateRequest body de POST /api/views/invalidate (hook invalidate() de la presentación).
type InvalidateRequest struct {
	Families []string `json:"families" validate:"required,min=1,dive,required"`
}

// InvalidateResponse cuántas vistas cacheadas se descartaron.
type InvalidateResponse struct {
	Invalidated int `json:"invalidated"`
}
