package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/inventory"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// InventoryHandler existencias por ubicación, valorización y alertas de reorden (protegido).
type InventoryHandler struct {
	uc            *inventory.InventoryUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase, replenishment *inventory.ReplenishmentUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment, log: log}
}

// Upsert godoc
// @Summary      Crear o actualizar existencia
// @Description  Si ya existe el par (component_number, location) se reemplazan sus valores.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "component_number, location, current_qty, daily_demand, lead_time_days, safety_stock"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Upsert(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Upsert(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar existencias
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Componente, descripción o ubicación"
// @Param        status  query  string  false  "below_reorder | ok"
// @Param        sort    query  string  false  "component_number | location | current_qty | reorder_point | value | lead_time_days | updated_at"
// @Param        order   query  string  false  "asc | desc"
// @Success      200     {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
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

// GetByID GET /api/inventory/:id
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateQuantity PUT /api/inventory/:id/quantity
func (h *InventoryHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateQuantityRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), GetCompanyID(c), c.Params("id"), in.CurrentQty)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar existencia
// @Description  Suma delta a la cantidad actual; delta negativo es una salida y no puede dejar la existencia en negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la existencia"
// @Param        body  body  dto.AdjustQuantityRequest  true  "delta, reason"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Adjust(c.UserContext(), GetCompanyID(c), c.Params("id"), in.Delta)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().
		Str("company_id", GetCompanyID(c)).
		Str("user_id", GetUserID(c)).
		Str("inventory_id", out.ID).
		Str("delta", in.Delta.String()).
		Str("reason", in.Reason).
		Msg("ajuste de inventario")
	return c.JSON(out)
}

// Value GET /api/inventory/value: Σ cantidad × precio unitario (fallback para componentes fuera de catálogo).
func (h *InventoryHandler) Value(c *fiber.Ctx) error {
	out, err := h.uc.Value(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// BelowReorder GET /api/inventory/below-reorder
func (h *InventoryHandler) BelowReorder(c *fiber.Ctx) error {
	out, err := h.uc.BelowReorder(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ReorderPoint POST /api/inventory/reorder-point
func (h *InventoryHandler) ReorderPoint(c *fiber.Ctx) error {
	var in dto.ReorderPointRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.CalculateReorderPoint(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// RequestScan godoc
// @Summary      Encolar escaneo de reorden
// @Description  Encola el escaneo en el worker. Sin cola configurada el escaneo se ejecuta en línea (queued=false).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      202  {object}  dto.ReorderScanResponse
// @Router       /api/inventory/reorder-scan [post]
func (h *InventoryHandler) RequestScan(c *fiber.Ctx) error {
	out, err := h.replenishment.RequestScan(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// Alerts GET /api/inventory/reorder-alerts: último escaneo cacheado.
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.replenishment.Alerts(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
