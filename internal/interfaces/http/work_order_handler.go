package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// WorkOrderHandler órdenes de trabajo de producción (escritura admin/planner).
type WorkOrderHandler struct {
	uc  *usecase.WorkOrderUseCase
	log *logger.Logger
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(uc *usecase.WorkOrderUseCase, log *logger.Logger) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear orden de trabajo
// @Description  La BOM referenciada no puede estar obsoleta.
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkOrderRequest  true  "bom_id, quantity, priority, start_date, due_date"
// @Success      201   {object}  dto.WorkOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-orders [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/work-orders?sort=wo_number|product_name|status|priority|quantity|start_date|due_date
func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
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

func (h *WorkOrderHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *WorkOrderHandler) UpdateStatus(c *fiber.Ctx) error {
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

// Requirements GET /api/work-orders/:id/requirements: explosión × cantidad contra inventario.
func (h *WorkOrderHandler) Requirements(c *fiber.Ctx) error {
	out, err := h.uc.Requirements(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
