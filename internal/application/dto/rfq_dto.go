package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RFQItemRequest componente solicitado.
type RFQItemRequest struct {
	ComponentNumber string          `json:"component_number" validate:"required,max=100"`
	Quantity        decimal.Decimal `json:"quantity"`
	TargetPrice     decimal.Decimal `json:"target_price"`
}

// CreateRFQRequest body para POST /api/rfqs.
type CreateRFQRequest struct {
	RFQNumber  string           `json:"rfq_number" validate:"omitempty,max=50"`
	Title      string           `json:"title" validate:"required,max=200"`
	SupplierID string           `json:"supplier_id" validate:"required,uuid"`
	IssueDate  *time.Time       `json:"issue_date"`
	DueDate    *time.Time       `json:"due_date"`
	Items      []RFQItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuoteRequest body para POST /api/rfqs/:id/quote.
type QuoteRequest struct {
	QuotedAmount decimal.Decimal `json:"quoted_amount"`
}

// RFQItemResponse componente solicitado con su descripción.
type RFQItemResponse struct {
	ComponentNumber string          `json:"component_number"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	TargetPrice     decimal.Decimal `json:"target_price"`
}

// RFQResponse salida de una solicitud de cotización.
type RFQResponse struct {
	ID           string            `json:"id"`
	RFQNumber    string            `json:"rfq_number"`
	Title        string            `json:"title"`
	SupplierID   string            `json:"supplier_id"`
	SupplierName string            `json:"supplier_name"` // "N/A" si el proveedor no existe
	Status       string            `json:"status"`
	IssueDate    time.Time         `json:"issue_date"`
	DueDate      *time.Time        `json:"due_date,omitempty"`
	QuotedAmount *decimal.Decimal  `json:"quoted_amount,omitempty"`
	Items        []RFQItemResponse `json:"items"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// RFQListResponse lista paginada de RFQs.
type RFQListResponse struct {
	Items []RFQResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
