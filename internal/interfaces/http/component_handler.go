package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// ComponentHandler catálogo de componentes, expuesto en /api/product (protegido).
type ComponentHandler struct {
	uc  *usecase.ComponentUseCase
	log *logger.Logger
}

// NewComponentHandler construye el handler.
func NewComponentHandler(uc *usecase.ComponentUseCase, log *logger.Logger) *ComponentHandler {
	return &ComponentHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear componente
// @Tags         product
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateComponentRequest  true  "Datos del componente"
// @Success      201   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/product [post]
func (h *ComponentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateComponentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener componente por ID
// @Tags         product
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del componente"
// @Success      200  {object}  dto.ComponentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product/{id} [get]
func (h *ComponentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar componentes
// @Tags         product
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Número de componente o descripción"
// @Param        sort    query  string  false  "component_number | description | unit_price | supplier_name | updated_at"
// @Param        order   query  string  false  "asc | desc"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ComponentListResponse
// @Router       /api/product [get]
func (h *ComponentHandler) List(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Actualizar componente
// @Tags         product
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del componente"
// @Param        body  body  dto.UpdateComponentRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/product/{id} [put]
func (h *ComponentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateComponentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/product/:id
func (h *ComponentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
