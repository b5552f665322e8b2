package memory

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepository)(nil)

// ShipmentRepository implementación en memoria de envíos.
type ShipmentRepository struct{ s *Store }

// NewShipmentRepository construye el repositorio sobre el store.
func NewShipmentRepository(s *Store) *ShipmentRepository { return &ShipmentRepository{s: s} }

func (r *ShipmentRepository) Create(_ context.Context, sh *entity.Shipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.shipments.has(sh.ID) {
		return domain.ErrDuplicate
	}
	r.s.shipments.put(sh.ID, sh)
	return nil
}

func (r *ShipmentRepository) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.shipments.get(id), nil
}

func (r *ShipmentRepository) ListByCompany(_ context.Context, companyID string) ([]*entity.Shipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.shipments.find(func(x *entity.Shipment) bool { return x.CompanyID == companyID }), nil
}

func (r *ShipmentRepository) ListByPurchaseOrder(_ context.Context, purchaseOrderID string) ([]*entity.Shipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.shipments.find(func(x *entity.Shipment) bool { return x.PurchaseOrderID == purchaseOrderID }), nil
}

func (r *ShipmentRepository) Update(_ context.Context, sh *entity.Shipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.shipments.has(sh.ID) {
		return domain.ErrNotFound
	}
	r.s.shipments.put(sh.ID, sh)
	return nil
}
