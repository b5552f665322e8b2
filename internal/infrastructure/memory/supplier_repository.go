package memory

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

// SupplierRepository implementación en memoria de repository.SupplierRepository.
type SupplierRepository struct{ s *Store }

// NewSupplierRepository construye el repositorio sobre el store.
func NewSupplierRepository(s *Store) *SupplierRepository { return &SupplierRepository{s: s} }

func (r *SupplierRepository) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.suppliers.has(sup.ID) {
		return domain.ErrDuplicate
	}
	r.s.suppliers.put(sup.ID, sup)
	return nil
}

func (r *SupplierRepository) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.suppliers.get(id), nil
}

func (r *SupplierRepository) ListByCompany(_ context.Context, companyID string) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.suppliers.find(func(x *entity.Supplier) bool { return x.CompanyID == companyID }), nil
}
