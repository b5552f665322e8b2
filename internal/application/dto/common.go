package dto

import "github.com/shopspring/decimal"

// NotAvailable valor mostrado cuando una referencia (proveedor, componente) no se puede resolver.
const NotAvailable = "N/A"

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// StatusUpdateRequest body para PATCH /:id/status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// StatsResponse agregados de un listado: conteo por estado y suma del campo monetario.
type StatsResponse struct {
	Total       int             `json:"total"`
	ByStatus    map[string]int  `json:"by_status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
