package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/listing"
	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var userListing = listing.Spec[dto.UserResponse]{
	Status: func(u dto.UserResponse) string { return u.Status },
	Text:   func(u dto.UserResponse) []string { return []string{u.Email, u.Name, u.Role} },
	Sorters: map[string]listing.Comparator[dto.UserResponse]{
		"email":      listing.ByString(func(u dto.UserResponse) string { return u.Email }),
		"name":       listing.ByString(func(u dto.UserResponse) string { return u.Name }),
		"role":       listing.ByString(func(u dto.UserResponse) string { return u.Role }),
		"created_at": listing.ByTime(func(u dto.UserResponse) time.Time { return u.CreatedAt }),
	},
}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario de la empresa por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// List usuarios de la empresa con búsqueda, filtro por estado y orden.
func (uc *UserUseCase) List(ctx context.Context, companyID string, q listing.Query) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	all := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		all = append(all, *toUserResponse(u))
	}
	q.Normalize()
	page, total := listing.Apply(all, q, userListing)
	return &dto.UserListResponse{
		Items: page,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// UpdateRole asigna un rol a un usuario de la misma empresa. Un admin no puede
// cambiar su propio rol, así la empresa nunca se queda sin administrador por esta vía.
func (uc *UserUseCase) UpdateRole(ctx context.Context, companyID, actorID, id, role string) (*dto.UserResponse, error) {
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	if id == actorID {
		return nil, fmt.Errorf("%w: no puede cambiar su propio rol", domain.ErrInvalidInput)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if err := uc.repo.UpdateRole(ctx, id, role, now); err != nil {
		return nil, err
	}
	user.Role = role
	user.UpdatedAt = now
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
