package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryRequest body para POST /api/inventory.
type CreateInventoryRequest struct {
	ComponentNumber string          `json:"component_number" validate:"required,max=100"`
	Location        string          `json:"location" validate:"required,max=100"`
	CurrentQty      decimal.Decimal `json:"current_qty"`
	DailyDemand     decimal.Decimal `json:"daily_demand"`
	LeadTimeDays    int             `json:"lead_time_days" validate:"min=0"`
	SafetyStock     decimal.Decimal `json:"safety_stock"`
}

// UpdateQuantityRequest body para PUT /api/inventory/:id/quantity.
type UpdateQuantityRequest struct {
	CurrentQty decimal.Decimal `json:"current_qty"`
}

// InventoryResponse existencia con sus métricas derivadas.
type InventoryResponse struct {
	ID              string          `json:"id"`
	ComponentNumber string          `json:"component_number"`
	Description     string          `json:"description"` // "N/A" si el componente no está en el catálogo
	Location        string          `json:"location"`
	CurrentQty      decimal.Decimal `json:"current_qty"`
	DailyDemand     decimal.Decimal `json:"daily_demand"`
	LeadTimeDays    int             `json:"lead_time_days"`
	SafetyStock     decimal.Decimal `json:"safety_stock"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	NeedsReorder    bool            `json:"needs_reorder"` // false si ReorderPoint es 0
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Value           decimal.Decimal `json:"value"` // CurrentQty * UnitPrice
	UpdatedAt       time.Time       `json:"updated_at"`
}

// InventoryListResponse lista paginada de existencias.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// InventoryValueResponse valorización total del inventario de la empresa.
type InventoryValueResponse struct {
	TotalValue        decimal.Decimal `json:"total_value"`
	ItemCount         int             `json:"item_count"`
	FallbackUnitPrice decimal.Decimal `json:"fallback_unit_price"`
	UnpricedItems     int             `json:"unpriced_items"` // ítems valorizados con el precio fallback
}

// ReorderPointRequest body para POST /api/inventory/reorder-point (calculadora).
type ReorderPointRequest struct {
	DailyDemand  decimal.Decimal `json:"daily_demand"`
	LeadTimeDays int             `json:"lead_time_days" validate:"min=0"`
	SafetyStock  decimal.Decimal `json:"safety_stock"`
}

// ReorderPointResponse resultado de la calculadora.
type ReorderPointResponse struct {
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// ReorderAlertDTO existencia en o por debajo de su punto de reorden.
type ReorderAlertDTO struct {
	InventoryID       string          `json:"inventory_id"`
	ComponentNumber   string          `json:"component_number"`
	Location          string          `json:"location"`
	CurrentQty        decimal.Decimal `json:"current_qty"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"`
}

// ReorderAlertsResponse resultado del escaneo de reorden.
type ReorderAlertsResponse struct {
	CompanyID   string            `json:"company_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Total       int               `json:"total"`
	Alerts      []ReorderAlertDTO `json:"alerts"`
}

// AdjustQuantityRequest body para POST /api/inventory/:id/adjust. Delta negativo es una salida.
type AdjustQuantityRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason" validate:"max=200"`
}

// ReorderScanResponse respuesta al encolar un escaneo de reorden.
type ReorderScanResponse struct {
	TaskID string `json:"task_id,omitempty"`
	Queued bool   `json:"queued"` // false: el escaneo se ejecutó en línea
}
