package memory

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepository)(nil)

// CompanyRepository implementación en memoria de repository.CompanyRepository.
type CompanyRepository struct{ s *Store }

// NewCompanyRepository construye el repositorio sobre el store.
func NewCompanyRepository(s *Store) *CompanyRepository { return &CompanyRepository{s: s} }

// Create inserta una empresa. ID o TaxID repetidos → domain.ErrDuplicate.
func (r *CompanyRepository) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.companies.has(c.ID) {
		return domain.ErrDuplicate
	}
	if r.s.companies.first(func(x *entity.Company) bool { return x.TaxID == c.TaxID }) != nil {
		return domain.ErrDuplicate
	}
	r.s.companies.put(c.ID, c)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CompanyRepository) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.companies.get(id), nil
}

// GetByTaxID busca por identificación tributaria.
func (r *CompanyRepository) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.companies.first(func(x *entity.Company) bool { return x.TaxID == taxID }), nil
}
