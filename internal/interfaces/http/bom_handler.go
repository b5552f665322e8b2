package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// BOMHandler listas de materiales (escritura admin/planner).
type BOMHandler struct {
	uc  *usecase.BOMUseCase
	log *logger.Logger
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *usecase.BOMUseCase, log *logger.Logger) *BOMHandler {
	return &BOMHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear lista de materiales
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "product_number, name, version, items"
// @Success      201   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boms [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/boms
func (h *BOMHandler) List(c *fiber.Ctx) error {
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

// Stats GET /api/boms/stats: total_amount es la suma de costos unitarios.
func (h *BOMHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *BOMHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *BOMHandler) UpdateStatus(c *fiber.Ctx) error {
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

// Explode godoc
// @Summary      Explosión de materiales
// @Description  Cantidad requerida de cada componente para fabricar `units` unidades (default 1).
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la BOM"
// @Param        units  query  number  false  "Unidades a fabricar"  default(1)
// @Success      200    {object}  dto.BOMExplosionResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/explode [get]
func (h *BOMHandler) Explode(c *fiber.Ctx) error {
	units, err := decimal.NewFromString(c.Query("units", "1"))
	if err != nil {
		return respondError(c, h.log, fmt.Errorf("%w: units no es numérico", domain.ErrInvalidInput))
	}
	out, err := h.uc.Explode(c.UserContext(), GetCompanyID(c), c.Params("id"), units)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Cost GET /api/boms/:id/cost
func (h *BOMHandler) Cost(c *fiber.Ctx) error {
	out, err := h.uc.Cost(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
