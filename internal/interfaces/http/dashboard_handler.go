package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/supplychain-api/internal/application/analytics"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve los KPIs de todos los módulos.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (inventory_value, items_below_reorder, stats de
// órdenes de compra, envíos, RFQs, BOMs y órdenes de trabajo, open_purchase_amount).
// El resultado se cachea por empresa durante CACHE_TTL_SECONDS.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}
