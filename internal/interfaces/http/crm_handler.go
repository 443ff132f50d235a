package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-ops/internal/application/crm"
	"github.com/jhoicas/panaderia-ops/internal/application/dto"
)

// CRMHandler mensajes a clientes y cupones de influenciadores.
type CRMHandler struct {
	messages  *crm.MessageUseCase
	discounts *crm.DiscountUseCase
}

// NewCRMHandler construye el handler.
func NewCRMHandler(messages *crm.MessageUseCase, discounts *crm.DiscountUseCase) *CRMHandler {
	return &CRMHandler{messages: messages, discounts: discounts}
}

// CreateMessage POST /api/crm/messages
func (h *CRMHandler) CreateMessage(c *fiber.Ctx) error {
	var in dto.CreateMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.messages.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMessages GET /api/crm/customers/:customerId/messages
func (h *CRMHandler) ListMessages(c *fiber.Ctx) error {
	list, err := h.messages.ListByCustomer(c.Context(), c.Params("customerId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreateDiscount POST /api/discounts
func (h *CRMHandler) CreateDiscount(c *fiber.Ctx) error {
	var in dto.CreateDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.discounts.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDiscounts GET /api/discounts
func (h *CRMHandler) ListDiscounts(c *fiber.Ctx) error {
	list, err := h.discounts.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
