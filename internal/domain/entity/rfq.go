package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de cotización.
const (
	RFQStatusDraft     = "draft"
	RFQStatusSent      = "sent"
	RFQStatusResponded = "responded"
	RFQStatusAwarded   = "awarded"
	RFQStatusClosed    = "closed"
)

var rfqTransitions = transitionTable{
	RFQStatusDraft:     {RFQStatusSent, RFQStatusClosed},
	RFQStatusSent:      {RFQStatusResponded, RFQStatusClosed},
	RFQStatusResponded: {RFQStatusAwarded, RFQStatusClosed},
}

// RequestForQuotation documento de compras enviado a un proveedor para obtener precio.
type RequestForQuotation struct {
	ID           string
	CompanyID    string
	RFQNumber    string
	Title        string
	SupplierID   string
	Status       string
	IssueDate    time.Time
	DueDate      *time.Time
	QuotedAmount *decimal.Decimal // nil hasta que el proveedor responde
	Items        []RFQItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RFQItem componente y cantidad solicitados.
type RFQItem struct {
	ComponentNumber string
	Quantity        decimal.Decimal
	TargetPrice     decimal.Decimal
}

// CanTransitionTo indica si la RFQ puede pasar al estado indicado.
func (r *RequestForQuotation) CanTransitionTo(status string) bool {
	return rfqTransitions.allows(r.Status, status)
}

// IsValidRFQStatus indica si el estado pertenece al ciclo de vida de RFQs.
func IsValidRFQStatus(status string) bool { return rfqTransitions.known(status) }
