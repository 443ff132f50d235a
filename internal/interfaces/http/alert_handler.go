package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-ops/internal/application/alerts"
	"github.com/jhoicas/panaderia-ops/internal/application/dto"
)

// AlertHandler alertas operativas de producto.
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// ListActive alertas sin resolver, más nuevas primero.
// GET /api/alerts
func (h *AlertHandler) ListActive(c *fiber.Ctx) error {
	list, err := h.uc.ListActive(c.Context())
	return writeView(c, list, err, h.uc.ActiveView().State())
}

// CountActive contador para el badge.
// GET /api/alerts/count
func (h *AlertHandler) CountActive(c *fiber.Ctx) error {
	n, err := h.uc.CountActive(c.Context())
	return writeView(c, fiber.Map{"count": n}, err, h.uc.CountView().State())
}

// Raise registra una alerta activa para una receta (lo llama el disparador de reglas).
// POST /api/alerts
func (h *AlertHandler) Raise(c *fiber.Ctx) error {
	var in dto.RaiseAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Raise(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Resolve cierra la alerta con la acción tomada. Una segunda resolución responde 409.
// POST /api/alerts/:id/resolve
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Resolve(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
