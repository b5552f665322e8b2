package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BomItemRequest componente de una BOM.
type BomItemRequest struct {
	ComponentNumber string          `json:"component_number" validate:"required,max=100"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// CreateBOMRequest body para POST /api/boms.
type CreateBOMRequest struct {
	ProductNumber string           `json:"product_number" validate:"required,max=100"`
	Name          string           `json:"name" validate:"required,max=200"`
	Version       string           `json:"version" validate:"omitempty,max=20"`
	Items         []BomItemRequest `json:"items" validate:"required,min=1,dive"`
}

// BomItemResponse componente con su descripción y precio de catálogo.
type BomItemResponse struct {
	ComponentNumber string          `json:"component_number"`
	Description     string          `json:"description"` // "N/A" si no está en el catálogo
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// BOMResponse salida de una lista de materiales.
type BOMResponse struct {
	ID            string            `json:"id"`
	ProductNumber string            `json:"product_number"`
	Name          string            `json:"name"`
	Version       string            `json:"version"`
	Status        string            `json:"status"`
	ItemCount     int               `json:"item_count"`
	UnitCost      decimal.Decimal   `json:"unit_cost"`
	Items         []BomItemResponse `json:"items"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// BOMListResponse lista paginada de BOMs.
type BOMListResponse struct {
	Items []BOMResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// RequirementDTO requerimiento de un componente.
type RequirementDTO struct {
	ComponentNumber string          `json:"component_number"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// BOMExplosionResponse requerimientos para fabricar Units unidades.
type BOMExplosionResponse struct {
	BomID        string           `json:"bom_id"`
	Units        decimal.Decimal  `json:"units"`
	Requirements []RequirementDTO `json:"requirements"`
}

// BOMCostResponse costo unitario de la BOM valorizado con el catálogo.
type BOMCostResponse struct {
	BomID    string          `json:"bom_id"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}
