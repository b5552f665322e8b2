package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkOrderRequest body para POST /api/work-orders.
type CreateWorkOrderRequest struct {
	WONumber  string          `json:"wo_number" validate:"omitempty,max=50"`
	BomID     string          `json:"bom_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	Priority  string          `json:"priority" validate:"omitempty,oneof=low medium high"`
	StartDate *time.Time      `json:"start_date"`
	DueDate   *time.Time      `json:"due_date"`
}

// WorkOrderResponse salida de una orden de trabajo.
type WorkOrderResponse struct {
	ID          string          `json:"id"`
	WONumber    string          `json:"wo_number"`
	BomID       string          `json:"bom_id"`
	ProductName string          `json:"product_name"` // "N/A" si la BOM no existe
	Quantity    decimal.Decimal `json:"quantity"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WorkOrderListResponse lista paginada de órdenes de trabajo.
type WorkOrderListResponse struct {
	Items []WorkOrderResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ShortageDTO faltante de un componente.
type ShortageDTO struct {
	ComponentNumber string          `json:"component_number"`
	Required        decimal.Decimal `json:"required"`
	Available       decimal.Decimal `json:"available"`
	Missing         decimal.Decimal `json:"missing"`
}

// WorkOrderRequirementsResponse materiales de la orden contra el inventario disponible.
type WorkOrderRequirementsResponse struct {
	WorkOrderID  string           `json:"work_order_id"`
	Requirements []RequirementDTO `json:"requirements"`
	Shortages    []ShortageDTO    `json:"shortages"`
	CanStart     bool             `json:"can_start"`
}
