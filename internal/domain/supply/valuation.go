package supply

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// PriceBook resuelve el precio unitario por número de componente.
type PriceBook map[string]decimal.Decimal

// NewPriceBook construye el índice de precios desde el catálogo.
func NewPriceBook(components []*entity.Component) PriceBook {
	pb := make(PriceBook, len(components))
	for _, c := range components {
		pb[c.ComponentNumber] = c.UnitPrice
	}
	return pb
}

// UnitPrice devuelve el precio del componente o fallback si no está en el catálogo.
func (pb PriceBook) UnitPrice(componentNumber string, fallback decimal.Decimal) decimal.Decimal {
	if p, ok := pb[componentNumber]; ok {
		return p
	}
	return fallback
}

// InventoryValue = Σ CurrentQty * UnitPrice(ComponentNumber).
// Componentes desconocidos se valorizan a fallback. Lista vacía vale cero.
func InventoryValue(items []*entity.WarehouseInventory, prices PriceBook, fallback decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.CurrentQty.Mul(prices.UnitPrice(it.ComponentNumber, fallback)))
	}
	return total
}
