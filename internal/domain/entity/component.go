package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Component representa un ítem del catálogo (SKU) identificado por ComponentNumber.
// UnitPrice es la base de la valorización de inventario y del costo de BOMs.
type Component struct {
	ID              string
	CompanyID       string
	ComponentNumber string // único por empresa
	Description     string
	UnitPrice       decimal.Decimal
	UnitMeasure     string
	SupplierID      string // opcional
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
