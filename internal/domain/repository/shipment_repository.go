package repository

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// ShipmentRepository define el puerto de persistencia para envíos.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Shipment, error)
	ListByPurchaseOrder(ctx context.Context, purchaseOrderID string) ([]*entity.Shipment, error)
	Update(ctx context.Context, shipment *entity.Shipment) error
}
