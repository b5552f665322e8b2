package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// UserHandler consulta de usuarios de la empresa del token (solo admin).
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// List GET /api/users?search=&status=&sort=&order=
func (h *UserHandler) List(c *fiber.Ctx) error {
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

// GetByID GET /api/users/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateRole PATCH /api/users/:id/role
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateUserRoleRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.UpdateRole(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in.Role)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("company_id", GetCompanyID(c)).Str("user_id", out.ID).Str("role", out.Role).Msg("rol actualizado")
	return c.JSON(out)
}
