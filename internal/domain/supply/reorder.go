// Package supply agrupa los cálculos de dominio de la cadena de suministro:
// punto de reorden, valorización de inventario y explosión de BOMs.
// Son funciones puras sobre decimal; no conocen repositorios ni HTTP.
package supply

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// ReorderPoint = DemandaDiaria * DíasDeEntrega + StockDeSeguridad.
// Todas las entradas deben ser no negativas.
func ReorderPoint(dailyDemand decimal.Decimal, leadTimeDays int, safetyStock decimal.Decimal) (decimal.Decimal, error) {
	if dailyDemand.IsNegative() || leadTimeDays < 0 || safetyStock.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if leadTimeDays > MaxLeadTimeDays {
		return decimal.Zero, fmt.Errorf("%w: lead_time_days fuera de rango", domain.ErrInvalidInput)
	}
	if err := CheckBounds("daily_demand", dailyDemand); err != nil {
		return decimal.Zero, err
	}
	if err := CheckBounds("safety_stock", safetyStock); err != nil {
		return decimal.Zero, err
	}
	return dailyDemand.Mul(decimal.NewFromInt(int64(leadTimeDays))).Add(safetyStock), nil
}

// ItemReorderPoint calcula el punto de reorden con los parámetros guardados en la existencia.
// Un resultado 0 desactiva NeedsReorder para esa existencia.
// Parámetros negativos o fuera de rango (datos corruptos) se tratan como cero.
func ItemReorderPoint(item *entity.WarehouseInventory) decimal.Decimal {
	rp, err := ReorderPoint(item.DailyDemand, item.LeadTimeDays, item.SafetyStock)
	if err != nil {
		return decimal.Zero
	}
	return rp
}

// NeedsReorder indica si la existencia está en o por debajo de su punto de reorden.
// Con punto de reorden 0 (sin demanda ni stock de seguridad) devuelve false aunque
// CurrentQty sea 0: una existencia sin parámetros no genera alertas.
func NeedsReorder(item *entity.WarehouseInventory) bool {
	rp := ItemReorderPoint(item)
	if rp.IsZero() {
		return false
	}
	return item.CurrentQty.LessThanOrEqual(rp)
}

// SuggestedOrderQty cantidad para volver a 2x el punto de reorden (nunca negativa).
func SuggestedOrderQty(item *entity.WarehouseInventory) decimal.Decimal {
	target := ItemReorderPoint(item).Mul(decimal.NewFromInt(2))
	qty := target.Sub(item.CurrentQty)
	if qty.IsNegative() {
		return decimal.Zero
	}
	return qty
}
