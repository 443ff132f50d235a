package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
)

// errorFor traduce un error de aplicación a status + cuerpo.
// El orden importa: un LedgerError también envuelve el error del driver.
func errorFor(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrReadFailure):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "READ_FAILURE", Message: err.Error()}
	case errors.Is(err, domain.ErrWriteFailure):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "WRITE_FAILURE", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status, body := errorFor(err)
	return c.Status(status).JSON(body)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// writeView responde una vista derivada con el envoltorio {data, is_loading, error}.
// Con error, data va en null aunque el store conserve el último valor.
func writeView(c *fiber.Ctx, data any, err error, st refresh.ViewState) error {
	resp := dto.ViewResponse{IsLoading: st.IsLoading}
	if !st.FetchedAt.IsZero() {
		at := st.FetchedAt.UTC().Truncate(time.Millisecond)
		resp.FetchedAt = &at
	}
	if err != nil {
		status, body := errorFor(err)
		resp.Error = &body
		return c.Status(status).JSON(resp)
	}
	resp.Data = data
	return c.JSON(resp)
}
