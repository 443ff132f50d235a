package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
)

// ViewHandler expone el hook invalidate() de las vistas derivadas.
type ViewHandler struct {
	store *refresh.Store
}

// NewViewHandler construye el handler.
func NewViewHandler(store *refresh.Store) *ViewHandler {
	return &ViewHandler{store: store}
}

// Invalidate descarta las vistas cacheadas de las familias indicadas.
// La siguiente lectura de cada vista vuelve al ledger.
// POST /api/views/invalidate
// Body: { "families": ["sales", "alerts"] }
func (h *ViewHandler) Invalidate(c *fiber.Ctx) error {
	var in dto.InvalidateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	families := make([]domain.Family, 0, len(in.Families))
	for _, name := range in.Families {
		f, err := domain.ParseFamily(name)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "familia desconocida: " + name})
		}
		families = append(families, f)
	}
	n := h.store.Invalidate(families...)
	return c.JSON(dto.InvalidateResponse{Invalidated: n})
}
