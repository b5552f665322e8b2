package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

// PurchaseOrderRepository implementación en memoria de órdenes de compra.
type PurchaseOrderRepository struct{ s *Store }

// NewPurchaseOrderRepository construye el repositorio sobre el store.
func NewPurchaseOrderRepository(s *Store) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{s: s}
}

// Create inserta la orden con sus ítems. (empresa, número) es único.
func (r *PurchaseOrderRepository) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.purchaseOrders.has(po.ID) || r.s.purchaseOrders.first(samePONumber(po.CompanyID, po.PONumber)) != nil {
		return domain.ErrDuplicate
	}
	r.s.purchaseOrders.put(po.ID, po)
	return nil
}

func (r *PurchaseOrderRepository) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.purchaseOrders.get(id), nil
}

// GetForUpdate en memoria no bloquea filas: la exclusión la da TxRunner.
func (r *PurchaseOrderRepository) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepository) GetByNumber(_ context.Context, companyID, poNumber string) (*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.purchaseOrders.first(samePONumber(companyID, poNumber)), nil
}

func (r *PurchaseOrderRepository) ListByCompany(_ context.Context, companyID string) ([]*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.purchaseOrders.find(func(x *entity.PurchaseOrder) bool { return x.CompanyID == companyID }), nil
}

func (r *PurchaseOrderRepository) TransitionStatus(_ context.Context, id, from, to string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	po := r.s.purchaseOrders.get(id)
	if po == nil {
		return domain.ErrNotFound
	}
	if po.Status != from {
		return fmt.Errorf("%w: la orden ya está en %s", domain.ErrInvalidTransition, po.Status)
	}
	po.Status = to
	po.UpdatedAt = updatedAt
	r.s.purchaseOrders.put(id, po)
	return nil
}

func samePONumber(companyID, number string) func(*entity.PurchaseOrder) bool {
	return func(x *entity.PurchaseOrder) bool { return x.CompanyID == companyID && x.PONumber == number }
}
