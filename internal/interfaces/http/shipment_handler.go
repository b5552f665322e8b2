package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// ShipmentHandler envíos asociados a órdenes de compra.
type ShipmentHandler struct {
	uc  *usecase.ShipmentUseCase
	log *logger.Logger
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *usecase.ShipmentUseCase, log *logger.Logger) *ShipmentHandler {
	return &ShipmentHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar envío
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "purchase_order_id, carrier, tracking_number, estimated_arrival"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/shipments?search=&status=&sort=po_number|carrier|status|shipped_at|estimated_arrival|created_at
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Stats GET /api/shipments/stats
func (h *ShipmentHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus PATCH /api/shipments/:id/status
func (h *ShipmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdateRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetCompanyID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
