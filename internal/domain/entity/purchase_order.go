package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusDraft     = "draft"
	POStatusSubmitted = "submitted"
	POStatusApproved  = "approved"
	POStatusShipped   = "shipped"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

var poTransitions = transitionTable{
	POStatusDraft:     {POStatusSubmitted, POStatusCancelled},
	POStatusSubmitted: {POStatusApproved, POStatusCancelled},
	POStatusApproved:  {POStatusShipped, POStatusCancelled},
	POStatusShipped:   {POStatusReceived},
}

// PurchaseOrder orden de compra a un proveedor.
type PurchaseOrder struct {
	ID           string
	CompanyID    string
	PONumber     string
	SupplierID   string
	Status       string
	Currency     string
	OrderDate    time.Time
	ExpectedDate *time.Time
	TotalAmount  decimal.Decimal // Σ Quantity * UnitPrice de los ítems
	Items        []PurchaseOrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrderItem línea de la orden de compra.
type PurchaseOrderItem struct {
	ComponentNumber string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
}

// LineTotal Quantity * UnitPrice.
func (i PurchaseOrderItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// ComputeTotal recalcula TotalAmount desde los ítems.
func (po *PurchaseOrder) ComputeTotal() {
	total := decimal.Zero
	for _, it := range po.Items {
		total = total.Add(it.LineTotal())
	}
	po.TotalAmount = total
}

// CanTransitionTo indica si la orden puede pasar al estado indicado.
func (po *PurchaseOrder) CanTransitionTo(status string) bool {
	return poTransitions.allows(po.Status, status)
}

// IsValidPOStatus indica si el estado pertenece al ciclo de vida de órdenes de compra.
func IsValidPOStatus(status string) bool { return poTransitions.known(status) }
