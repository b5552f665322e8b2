package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// HeaderDocumentDigest SHA-256 hex de la forma canónica del XML entregado.
const HeaderDocumentDigest = "X-Document-Digest"

// RFQHandler solicitudes de cotización (escritura admin/buyer).
type RFQHandler struct {
	uc  *usecase.RFQUseCase
	log *logger.Logger
}

// NewRFQHandler construye el handler.
func NewRFQHandler(uc *usecase.RFQUseCase, log *logger.Logger) *RFQHandler {
	return &RFQHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear RFQ
// @Tags         rfqs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRFQRequest  true  "title, supplier_id, due_date, items"
// @Success      201   {object}  dto.RFQResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rfqs [post]
func (h *RFQHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRFQRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/rfqs
func (h *RFQHandler) List(c *fiber.Ctx) error {
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

// Stats GET /api/rfqs/stats: total_amount suma los montos cotizados.
func (h *RFQHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *RFQHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus PATCH /api/rfqs/:id/status. responded solo se alcanza con /quote.
func (h *RFQHandler) UpdateStatus(c *fiber.Ctx) error {
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

// Quote godoc
// @Summary      Registrar cotización
// @Description  Guarda el monto cotizado por el proveedor y pasa la RFQ de sent a responded.
// @Tags         rfqs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la RFQ"
// @Param        body  body  dto.QuoteRequest  true  "quoted_amount"
// @Success      200   {object}  dto.RFQResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/rfqs/{id}/quote [post]
func (h *RFQHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Quote(c.UserContext(), GetCompanyID(c), c.Params("id"), in.QuotedAmount)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// DownloadXML godoc
// @Summary      Documento XML de la RFQ
// @Description  XML canónico (C14N) para enviar al proveedor; el header X-Document-Digest lleva su SHA-256.
// @Tags         rfqs
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la RFQ"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rfqs/{id}/xml [get]
func (h *RFQHandler) DownloadXML(c *fiber.Ctx) error {
	doc, filename, err := h.uc.Document(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set(HeaderDocumentDigest, doc.Digest)
	return c.Send(doc.XML)
}
