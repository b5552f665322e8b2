package supply

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// Requirement cantidad requerida de un componente.
type Requirement struct {
	ComponentNumber string
	Quantity        decimal.Decimal
}

// Shortage faltante de un componente frente a lo disponible.
type Shortage struct {
	ComponentNumber string
	Required        decimal.Decimal
	Available       decimal.Decimal
	Missing         decimal.Decimal
}

// ExplodeBOM devuelve los requerimientos de componentes para fabricar units unidades.
// Líneas repetidas del mismo componente se suman. Resultado ordenado por componente.
func ExplodeBOM(bom *entity.BillOfMaterial, units decimal.Decimal) ([]Requirement, error) {
	if bom == nil {
		return nil, domain.ErrInvalidInput
	}
	if !units.IsPositive() {
		return nil, fmt.Errorf("%w: units debe ser positivo", domain.ErrInvalidInput)
	}
	if err := CheckBounds("units", units); err != nil {
		return nil, err
	}
	byComponent := make(map[string]decimal.Decimal, len(bom.Items))
	for _, it := range bom.Items {
		byComponent[it.ComponentNumber] = byComponent[it.ComponentNumber].Add(it.Quantity.Mul(units))
	}
	reqs := make([]Requirement, 0, len(byComponent))
	for cn, qty := range byComponent {
		reqs = append(reqs, Requirement{ComponentNumber: cn, Quantity: qty})
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].ComponentNumber < reqs[j].ComponentNumber })
	return reqs, nil
}

// BOMCost = Σ item.Quantity * UnitPrice(ComponentNumber) para una unidad de producto.
func BOMCost(bom *entity.BillOfMaterial, prices PriceBook, fallback decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range bom.Items {
		total = total.Add(it.Quantity.Mul(prices.UnitPrice(it.ComponentNumber, fallback)))
	}
	return total
}

// OnHand suma las existencias por componente (todas las ubicaciones).
func OnHand(items []*entity.WarehouseInventory) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, it := range items {
		out[it.ComponentNumber] = out[it.ComponentNumber].Add(it.CurrentQty)
	}
	return out
}

// MaterialShortages compara requerimientos contra existencias y devuelve solo los faltantes,
// en el mismo orden de reqs.
func MaterialShortages(reqs []Requirement, onHand map[string]decimal.Decimal) []Shortage {
	var out []Shortage
	for _, r := range reqs {
		avail := onHand[r.ComponentNumber]
		if avail.GreaterThanOrEqual(r.Quantity) {
			continue
		}
		out = append(out, Shortage{
			ComponentNumber: r.ComponentNumber,
			Required:        r.Quantity,
			Available:       avail,
			Missing:         r.Quantity.Sub(avail),
		})
	}
	return out
}
