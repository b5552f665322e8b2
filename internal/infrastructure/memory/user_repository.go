package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository implementación en memoria de repository.UserRepository.
type UserRepository struct{ s *Store }

// NewUserRepository construye el repositorio sobre el store.
func NewUserRepository(s *Store) *UserRepository { return &UserRepository{s: s} }

// Create inserta un usuario. El email es único en todo el sistema (login sin empresa).
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.users.has(u.ID) {
		return domain.ErrDuplicate
	}
	if r.s.users.first(sameEmail(u.Email)) != nil {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users.put(u.ID, u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.users.get(id), nil
}

// FindByEmail búsqueda sin distinguir mayúsculas.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.users.first(sameEmail(email)), nil
}

func (r *UserRepository) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	match := sameEmail(email)
	return r.s.users.first(func(u *entity.User) bool { return u.CompanyID == companyID && match(u) }), nil
}

func (r *UserRepository) ListByCompany(_ context.Context, companyID string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.users.find(func(u *entity.User) bool { return u.CompanyID == companyID }), nil
}

// UpdateRole cambia el rol; domain.ErrNotFound si el usuario no existe.
func (r *UserRepository) UpdateRole(_ context.Context, id, role string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.users.get(id)
	if u == nil {
		return domain.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = updatedAt
	r.s.users.put(id, u)
	return nil
}

func sameEmail(email string) func(*entity.User) bool {
	return func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }
}
