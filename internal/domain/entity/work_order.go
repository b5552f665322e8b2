package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo.
const (
	WOStatusPlanned    = "planned"
	WOStatusInProgress = "in_progress"
	WOStatusCompleted  = "completed"
	WOStatusCancelled  = "cancelled"
)

// Prioridades de una orden de trabajo.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var woTransitions = transitionTable{
	WOStatusPlanned:    {WOStatusInProgress, WOStatusCancelled},
	WOStatusInProgress: {WOStatusCompleted, WOStatusCancelled},
}

// WorkOrder orden de fabricación de Quantity unidades del producto de una BOM.
type WorkOrder struct {
	ID          string
	CompanyID   string
	WONumber    string
	BomID       string
	Quantity    decimal.Decimal
	Status      string
	Priority    string
	StartDate   *time.Time
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanTransitionTo indica si la orden puede pasar al estado indicado.
func (w *WorkOrder) CanTransitionTo(status string) bool {
	return woTransitions.allows(w.Status, status)
}

// IsValidWOStatus indica si el estado pertenece al ciclo de vida de órdenes de trabajo.
func IsValidWOStatus(status string) bool { return woTransitions.known(status) }

// PriorityRank orden numérico de la prioridad (high primero al ordenar desc).
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}
