package entity

import "time"

// Estados de un envío.
const (
	ShipmentStatusPending   = "pending"
	ShipmentStatusInTransit = "in_transit"
	ShipmentStatusDelayed   = "delayed"
	ShipmentStatusDelivered = "delivered"
)

var shipmentTransitions = transitionTable{
	ShipmentStatusPending:   {ShipmentStatusInTransit, ShipmentStatusDelayed},
	ShipmentStatusInTransit: {ShipmentStatusDelayed, ShipmentStatusDelivered},
	ShipmentStatusDelayed:   {ShipmentStatusInTransit, ShipmentStatusDelivered},
}

// Shipment información de envío asociada a una orden de compra.
type Shipment struct {
	ID               string
	CompanyID        string
	PurchaseOrderID  string
	Carrier          string
	TrackingNumber   string
	Status           string
	ShippedAt        *time.Time
	EstimatedArrival *time.Time
	DeliveredAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanTransitionTo indica si el envío puede pasar al estado indicado.
func (s *Shipment) CanTransitionTo(status string) bool {
	return shipmentTransitions.allows(s.Status, status)
}

// IsValidShipmentStatus indica si el estado pertenece al ciclo de vida de envíos.
func IsValidShipmentStatus(status string) bool { return shipmentTransitions.known(status) }
