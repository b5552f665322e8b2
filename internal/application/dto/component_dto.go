package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateComponentRequest entrada para crear un componente del catálogo.
type CreateComponentRequest struct {
	ComponentNumber string          `json:"component_number" validate:"required,min=1,max=100"`
	Description     string          `json:"description" validate:"max=500"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitMeasure     string          `json:"unit_measure" validate:"omitempty,max=20"`
	SupplierID      string          `json:"supplier_id" validate:"omitempty,uuid"`
}

// UpdateComponentRequest entrada para actualizar un componente (ComponentNumber es inmutable).
type UpdateComponentRequest struct {
	Description *string          `json:"description" validate:"omitempty,max=500"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	UnitMeasure *string          `json:"unit_measure" validate:"omitempty,max=20"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty,uuid"`
}

// ComponentResponse salida de un componente.
type ComponentResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	ComponentNumber string          `json:"component_number"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitMeasure     string          `json:"unit_measure"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	SupplierName    string          `json:"supplier_name"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ComponentListResponse lista paginada de componentes.
type ComponentListResponse struct {
	Items []ComponentResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
