package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/application/inventory"
)

// InventoryHandler lotes producidos (vitrina) e ingredientes (bodega).
type InventoryHandler struct {
	stock       *inventory.StockUseCase
	ingredients *inventory.IngredientUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, ingredients *inventory.IngredientUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, ingredients: ingredients}
}

// ListItems lotes con masa disponible, en orden de producción.
// GET /api/inventory/items
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.stock.ListActive(c.Context())
	return writeView(c, items, err, h.stock.ActiveView().State())
}

// SetStatus cambia la etiqueta de salud del lote.
// PATCH /api/inventory/items/:id/status
// Body: { "status": "normal" | "atencion" | "critico" }
func (h *InventoryHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.stock.SetStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Discard deja el lote en 0 y crítico. Repetirlo no cambia nada.
// POST /api/inventory/items/:id/discard
func (h *InventoryHandler) Discard(c *fiber.Ctx) error {
	out, err := h.stock.Discard(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListIngredients todos los ingredientes por nombre, con su marca de stock bajo.
// GET /api/ingredients
func (h *InventoryHandler) ListIngredients(c *fiber.Ctx) error {
	list, err := h.ingredients.List(c.Context())
	return writeView(c, list, err, h.ingredients.AllView().State())
}

// ListLowStock ingredientes en o bajo su mínimo (tarjeta de reposición).
// GET /api/ingredients/low-stock
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	list, err := h.ingredients.ListLowStock(c.Context())
	return writeView(c, list, err, h.ingredients.AllView().State())
}

// LowStockCount contador para el badge del menú.
// GET /api/ingredients/low-stock/count
func (h *InventoryHandler) LowStockCount(c *fiber.Ctx) error {
	n, err := h.ingredients.LowStockCount(c.Context())
	return writeView(c, fiber.Map{"count": n}, err, h.ingredients.LowStockView().State())
}

// CreateIngredient alta de un ingrediente.
// POST /api/ingredients
func (h *InventoryHandler) CreateIngredient(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ingredients.RegisterIngredient(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AdjustIngredient reposición (delta > 0) o consumo (delta < 0).
// POST /api/ingredients/:id/movements
func (h *InventoryHandler) AdjustIngredient(c *fiber.Ctx) error {
	var in dto.AdjustIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ingredients.AdjustIngredient(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
