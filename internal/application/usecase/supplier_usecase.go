package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/listing"
	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var supplierListing = listing.Spec[dto.SupplierResponse]{
	Text: func(s dto.SupplierResponse) []string { return []string{s.Name, s.ContactEmail, s.Country} },
	Sorters: map[string]listing.Comparator[dto.SupplierResponse]{
		"name":       listing.ByString(func(s dto.SupplierResponse) string { return s.Name }),
		"country":    listing.ByString(func(s dto.SupplierResponse) string { return s.Country }),
		"created_at": listing.ByTime(func(s dto.SupplierResponse) time.Time { return s.CreatedAt }),
	},
}

// SupplierUseCase casos de uso para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor para la empresa.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	supplier := &entity.Supplier{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		ContactEmail: in.ContactEmail,
		Phone:        in.Phone,
		Country:      in.Country,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor de la empresa.
func (uc *SupplierUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toSupplierResponse(supplier), nil
}

// List proveedores de la empresa.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, q listing.Query) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	all := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		all = append(all, *toSupplierResponse(s))
	}
	q.Normalize()
	page, total := listing.Apply(all, q, supplierListing)
	return &dto.SupplierListResponse{
		Items: page,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		Phone:        s.Phone,
		Country:      s.Country,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
