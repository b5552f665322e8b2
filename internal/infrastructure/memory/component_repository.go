package memory

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.ComponentRepository = (*ComponentRepository)(nil)

// ComponentRepository implementación en memoria del catálogo de componentes.
type ComponentRepository struct{ s *Store }

// NewComponentRepository construye el repositorio sobre el store.
func NewComponentRepository(s *Store) *ComponentRepository { return &ComponentRepository{s: s} }

// Create inserta un componente. (empresa, número) es único.
func (r *ComponentRepository) Create(_ context.Context, c *entity.Component) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.components.has(c.ID) || r.s.components.first(sameComponent(c.CompanyID, c.ComponentNumber)) != nil {
		return domain.ErrDuplicate
	}
	r.s.components.put(c.ID, c)
	return nil
}

func (r *ComponentRepository) GetByID(_ context.Context, id string) (*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.components.get(id), nil
}

func (r *ComponentRepository) GetByNumber(_ context.Context, companyID, componentNumber string) (*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.components.first(sameComponent(companyID, componentNumber)), nil
}

func (r *ComponentRepository) Update(_ context.Context, c *entity.Component) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.components.has(c.ID) {
		return domain.ErrNotFound
	}
	r.s.components.put(c.ID, c)
	return nil
}

func (r *ComponentRepository) ListByCompany(_ context.Context, companyID string) ([]*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.components.find(func(x *entity.Component) bool { return x.CompanyID == companyID }), nil
}

func (r *ComponentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.components.remove(id) {
		return domain.ErrNotFound
	}
	return nil
}

func sameComponent(companyID, number string) func(*entity.Component) bool {
	return func(c *entity.Component) bool {
		return c.CompanyID == companyID && c.ComponentNumber == number
	}
}
