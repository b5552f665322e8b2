package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea de una orden de compra.
type PurchaseOrderItemRequest struct {
	ComponentNumber string          `json:"component_number" validate:"required,max=100"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	PONumber     string                     `json:"po_number" validate:"omitempty,max=50"`
	SupplierID   string                     `json:"supplier_id" validate:"required,uuid"`
	Currency     string                     `json:"currency" validate:"omitempty,len=3"`
	OrderDate    *time.Time                 `json:"order_date"`
	ExpectedDate *time.Time                 `json:"expected_date"`
	Items        []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseOrderItemResponse línea con su total.
type PurchaseOrderItemResponse struct {
	ComponentNumber string          `json:"component_number"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	PONumber     string                      `json:"po_number"`
	SupplierID   string                      `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name"` // "N/A" si el proveedor no existe
	Status       string                      `json:"status"`
	Currency     string                      `json:"currency"`
	OrderDate    time.Time                   `json:"order_date"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// PurchaseOrderListResponse lista paginada de órdenes de compra.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ReceivePurchaseOrderRequest body para POST /api/purchase-orders/:id/receive.
type ReceivePurchaseOrderRequest struct {
	Location string `json:"location" validate:"required,max=100"`
}
