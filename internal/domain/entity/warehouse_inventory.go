package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseInventory existencia de un componente en una ubicación de bodega,
// junto con los parámetros de demanda con los que se calcula su punto de reorden.
type WarehouseInventory struct {
	ID              string
	CompanyID       string
	ComponentNumber string
	Location        string
	CurrentQty      decimal.Decimal
	DailyDemand     decimal.Decimal
	LeadTimeDays    int
	SafetyStock     decimal.Decimal
	UpdatedAt       time.Time
}
