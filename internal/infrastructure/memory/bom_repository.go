package memory

import (
	"context"
	"time"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepository)(nil)

// BOMRepository implementación en memoria de listas de materiales.
type BOMRepository struct{ s *Store }

// NewBOMRepository construye el repositorio sobre el store.
func NewBOMRepository(s *Store) *BOMRepository { return &BOMRepository{s: s} }

func (r *BOMRepository) Create(_ context.Context, b *entity.BillOfMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.boms.has(b.ID) {
		return domain.ErrDuplicate
	}
	r.s.boms.put(b.ID, b)
	return nil
}

func (r *BOMRepository) GetByID(_ context.Context, id string) (*entity.BillOfMaterial, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.boms.get(id), nil
}

func (r *BOMRepository) ListByCompany(_ context.Context, companyID string) ([]*entity.BillOfMaterial, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.boms.find(func(x *entity.BillOfMaterial) bool { return x.CompanyID == companyID }), nil
}

func (r *BOMRepository) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b := r.s.boms.get(id)
	if b == nil {
		return domain.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = updatedAt
	r.s.boms.put(id, b)
	return nil
}
