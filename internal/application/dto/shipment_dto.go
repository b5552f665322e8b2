package dto

import "time"

// CreateShipmentRequest body para POST /api/shipments.
type CreateShipmentRequest struct {
	PurchaseOrderID  string     `json:"purchase_order_id" validate:"required,uuid"`
	Carrier          string     `json:"carrier" validate:"required,max=100"`
	TrackingNumber   string     `json:"tracking_number" validate:"omitempty,max=100"`
	ShippedAt        *time.Time `json:"shipped_at"`
	EstimatedArrival *time.Time `json:"estimated_arrival"`
}

// ShipmentResponse salida de un envío.
type ShipmentResponse struct {
	ID               string     `json:"id"`
	PurchaseOrderID  string     `json:"purchase_order_id"`
	PONumber         string     `json:"po_number"` // "N/A" si la orden no existe
	Carrier          string     `json:"carrier"`
	TrackingNumber   string     `json:"tracking_number"`
	Status           string     `json:"status"`
	ShippedAt        *time.Time `json:"shipped_at,omitempty"`
	EstimatedArrival *time.Time `json:"estimated_arrival,omitempty"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ShipmentListResponse lista paginada de envíos.
type ShipmentListResponse struct {
	Items []ShipmentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
