package entity

import "time"

// Supplier proveedor al que se emiten órdenes de compra y RFQs.
type Supplier struct {
	ID           string
	CompanyID    string
	Name         string
	ContactEmail string
	Phone        string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
