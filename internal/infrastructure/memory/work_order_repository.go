package memory

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepository)(nil)

// WorkOrderRepository implementación en memoria de órdenes de trabajo.
type WorkOrderRepository struct{ s *Store }

// NewWorkOrderRepository construye el repositorio sobre el store.
func NewWorkOrderRepository(s *Store) *WorkOrderRepository { return &WorkOrderRepository{s: s} }

func (r *WorkOrderRepository) Create(_ context.Context, wo *entity.WorkOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.workOrders.has(wo.ID) {
		return domain.ErrDuplicate
	}
	r.s.workOrders.put(wo.ID, wo)
	return nil
}

func (r *WorkOrderRepository) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.workOrders.get(id), nil
}

func (r *WorkOrderRepository) ListByCompany(_ context.Context, companyID string) ([]*entity.WorkOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.workOrders.find(func(x *entity.WorkOrder) bool { return x.CompanyID == companyID }), nil
}

func (r *WorkOrderRepository) Update(_ context.Context, wo *entity.WorkOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.workOrders.has(wo.ID) {
		return domain.ErrNotFound
	}
	r.s.workOrders.put(wo.ID, wo)
	return nil
}
