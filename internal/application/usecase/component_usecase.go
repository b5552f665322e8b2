package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/listing"
	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
	"github.com/jhoicas/supplychain-api/internal/domain/supply"
)

var componentListing = listing.Spec[dto.ComponentResponse]{
	Text: func(c dto.ComponentResponse) []string {
		return []string{c.ComponentNumber, c.Description, c.SupplierName}
	},
	Sorters: map[string]listing.Comparator[dto.ComponentResponse]{
		"component_number": listing.ByString(func(c dto.ComponentResponse) string { return c.ComponentNumber }),
		"description":      listing.ByString(func(c dto.ComponentResponse) string { return c.Description }),
		"unit_price":       listing.ByDecimal(func(c dto.ComponentResponse) decimal.Decimal { return c.UnitPrice }),
		"supplier_name":    listing.ByString(func(c dto.ComponentResponse) string { return c.SupplierName }),
		"updated_at":       listing.ByTime(func(c dto.ComponentResponse) time.Time { return c.UpdatedAt }),
	},
}

// ComponentUseCase casos de uso CRUD para el catálogo de componentes.
// UnitPrice alimenta la valorización de inventario y el costo de BOMs.
type ComponentUseCase struct {
	repo         repository.ComponentRepository
	supplierRepo repository.SupplierRepository
}

// NewComponentUseCase construye el caso de uso.
func NewComponentUseCase(repo repository.ComponentRepository, supplierRepo repository.SupplierRepository) *ComponentUseCase {
	return &ComponentUseCase{repo: repo, supplierRepo: supplierRepo}
}

// Create crea un componente. ComponentNumber es único por empresa.
func (uc *ComponentUseCase) Create(ctx context.Context, companyID string, in dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := supply.CheckBounds("unit_price", in.UnitPrice); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByNumber(ctx, companyID, in.ComponentNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "EA"
	}
	now := time.Now()
	component := &entity.Component{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		ComponentNumber: in.ComponentNumber,
		Description:     in.Description,
		UnitPrice:       in.UnitPrice,
		UnitMeasure:     in.UnitMeasure,
		SupplierID:      in.SupplierID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, component); err != nil {
		return nil, err
	}
	return uc.withSupplier(ctx, component)
}

// GetByID obtiene un componente de la empresa.
func (uc *ComponentUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ComponentResponse, error) {
	component, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.withSupplier(ctx, component)
}

// Update actualiza descripción, precio, unidad o proveedor. ComponentNumber no se modifica.
func (uc *ComponentUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	component, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Description != nil {
		component.Description = *in.Description
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if err := supply.CheckBounds("unit_price", *in.UnitPrice); err != nil {
			return nil, err
		}
		component.UnitPrice = *in.UnitPrice
	}
	if in.UnitMeasure != nil {
		component.UnitMeasure = *in.UnitMeasure
	}
	if in.SupplierID != nil {
		component.SupplierID = *in.SupplierID
	}
	component.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, component); err != nil {
		return nil, err
	}
	return uc.withSupplier(ctx, component)
}

// List catálogo de la empresa con búsqueda y orden.
func (uc *ComponentUseCase) List(ctx context.Context, companyID string, q listing.Query) (*dto.ComponentListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names, err := supplierNames(ctx, uc.supplierRepo, companyID)
	if err != nil {
		return nil, err
	}
	all := make([]dto.ComponentResponse, 0, len(list))
	for _, c := range list {
		all = append(all, *toComponentResponse(c, names))
	}
	q.Normalize()
	page, total := listing.Apply(all, q, componentListing)
	return &dto.ComponentListResponse{
		Items: page,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Delete elimina un componente de la empresa.
func (uc *ComponentUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ComponentUseCase) get(ctx context.Context, companyID, id string) (*entity.Component, error) {
	component, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}
	if component.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return component, nil
}

func (uc *ComponentUseCase) withSupplier(ctx context.Context, c *entity.Component) (*dto.ComponentResponse, error) {
	names := map[string]string{}
	if c.SupplierID != "" {
		s, err := uc.supplierRepo.GetByID(ctx, c.SupplierID)
		if err != nil {
			return nil, err
		}
		if s != nil && s.CompanyID == c.CompanyID {
			names[s.ID] = s.Name
		}
	}
	return toComponentResponse(c, names), nil
}

func toComponentResponse(c *entity.Component, supplierNames map[string]string) *dto.ComponentResponse {
	return &dto.ComponentResponse{
		ID:              c.ID,
		CompanyID:       c.CompanyID,
		ComponentNumber: c.ComponentNumber,
		Description:     c.Description,
		UnitPrice:       c.UnitPrice,
		UnitMeasure:     c.UnitMeasure,
		SupplierID:      c.SupplierID,
		SupplierName:    lookup(supplierNames, c.SupplierID),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
