package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una lista de materiales.
const (
	BOMStatusDraft    = "draft"
	BOMStatusActive   = "active"
	BOMStatusObsolete = "obsolete"
)

var bomTransitions = transitionTable{
	BOMStatusDraft:  {BOMStatusActive},
	BOMStatusActive: {BOMStatusObsolete},
}

// BillOfMaterial lista de componentes (de un nivel) que forman un producto.
type BillOfMaterial struct {
	ID            string
	CompanyID     string
	ProductNumber string
	Name          string
	Version       string
	Status        string
	Items         []BomItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BomItem cantidad de un componente por unidad de producto.
type BomItem struct {
	ComponentNumber string
	Quantity        decimal.Decimal
}

// CanTransitionTo indica si la BOM puede pasar al estado indicado.
func (b *BillOfMaterial) CanTransitionTo(status string) bool {
	return bomTransitions.allows(b.Status, status)
}

// IsValidBOMStatus indica si el estado pertenece al ciclo de vida de BOMs.
func IsValidBOMStatus(status string) bool { return bomTransitions.known(status) }
