package memory

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.RFQRepository = (*RFQRepository)(nil)

// RFQRepository implementación en memoria de solicitudes de cotización.
type RFQRepository struct{ s *Store }

// NewRFQRepository construye el repositorio sobre el store.
func NewRFQRepository(s *Store) *RFQRepository { return &RFQRepository{s: s} }

func (r *RFQRepository) Create(_ context.Context, rfq *entity.RequestForQuotation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.rfqs.has(rfq.ID) {
		return domain.ErrDuplicate
	}
	r.s.rfqs.put(rfq.ID, rfq)
	return nil
}

func (r *RFQRepository) GetByID(_ context.Context, id string) (*entity.RequestForQuotation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.rfqs.get(id), nil
}

func (r *RFQRepository) ListByCompany(_ context.Context, companyID string) ([]*entity.RequestForQuotation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.rfqs.find(func(x *entity.RequestForQuotation) bool { return x.CompanyID == companyID }), nil
}

// Update persiste Status, QuotedAmount y UpdatedAt; los ítems guardados se conservan.
func (r *RFQRepository) Update(_ context.Context, rfq *entity.RequestForQuotation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current := r.s.rfqs.get(rfq.ID)
	if current == nil {
		return domain.ErrNotFound
	}
	current.Status = rfq.Status
	current.QuotedAmount = clonePtr(rfq.QuotedAmount)
	current.UpdatedAt = rfq.UpdatedAt
	r.s.rfqs.put(rfq.ID, current)
	return nil
}
