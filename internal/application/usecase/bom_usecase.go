package usecase

import (
	"context"
	"fmt"
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

var bomListing = listing.Spec[dto.BOMResponse]{
	Status: func(b dto.BOMResponse) string { return b.Status },
	Text:   func(b dto.BOMResponse) []string { return []string{b.ProductNumber, b.Name, b.Version} },
	Sorters: map[string]listing.Comparator[dto.BOMResponse]{
		"product_number": listing.ByString(func(b dto.BOMResponse) string { return b.ProductNumber }),
		"name":           listing.ByString(func(b dto.BOMResponse) string { return b.Name }),
		"status":         listing.ByString(func(b dto.BOMResponse) string { return b.Status }),
		"item_count":     listing.ByInt(func(b dto.BOMResponse) int { return b.ItemCount }),
		"unit_cost":      listing.ByDecimal(func(b dto.BOMResponse) decimal.Decimal { return b.UnitCost }),
		"updated_at":     listing.ByTime(func(b dto.BOMResponse) time.Time { return b.UpdatedAt }),
	},
}

// BOMUseCase listas de materiales: alta, ciclo de vida, explosión y costeo.
type BOMUseCase struct {
	repo          repository.BOMRepository
	componentRepo repository.ComponentRepository
	fallbackPrice decimal.Decimal
}

// NewBOMUseCase construye el caso de uso. fallbackPrice costea componentes fuera del catálogo.
func NewBOMUseCase(repo repository.BOMRepository, componentRepo repository.ComponentRepository, fallbackPrice decimal.Decimal) *BOMUseCase {
	return &BOMUseCase{repo: repo, componentRepo: componentRepo, fallbackPrice: fallbackPrice}
}

// Create registra una BOM en estado draft.
func (uc *BOMUseCase) Create(ctx context.Context, companyID string, in dto.CreateBOMRequest) (*dto.BOMResponse, error) {
	items := make([]entity.BomItem, 0, len(in.Items))
	for _, it := range in.Items {
		if !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: cantidad de %s debe ser positiva", domain.ErrInvalidInput, it.ComponentNumber)
		}
		if err := supply.CheckBounds("quantity", it.Quantity); err != nil {
			return nil, fmt.Errorf("ítem %s: %w", it.ComponentNumber, err)
		}
		items = append(items, entity.BomItem{ComponentNumber: it.ComponentNumber, Quantity: it.Quantity})
	}
	version := in.Version
	if version == "" {
		version = "1.0"
	}
	now := time.Now()
	bom := &entity.BillOfMaterial{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		ProductNumber: in.ProductNumber,
		Name:          in.Name,
		Version:       version,
		Status:        entity.BOMStatusDraft,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, bom); err != nil {
		return nil, err
	}
	return uc.single(ctx, bom)
}

// GetByID obtiene una BOM con sus componentes y costo unitario.
func (uc *BOMUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.BOMResponse, error) {
	bom, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.single(ctx, bom)
}

// List BOMs con búsqueda, filtro por estado y orden (incluye costo unitario).
func (uc *BOMUseCase) List(ctx context.Context, companyID string, q listing.Query) (*dto.BOMListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	catalog, err := uc.componentRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	all := make([]dto.BOMResponse, 0, len(list))
	for _, b := range list {
		all = append(all, *toBOMResponse(b, catalog, uc.fallbackPrice))
	}
	q.Normalize()
	page, total := listing.Apply(all, q, bomListing)
	return &dto.BOMListResponse{
		Items: page,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Stats conteo por estado; total_amount suma el costo unitario de las BOMs.
func (uc *BOMUseCase) Stats(ctx context.Context, companyID string) (*dto.StatsResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	prices, err := uc.priceBook(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return buildStats(list,
		func(b *entity.BillOfMaterial) string { return b.Status },
		func(b *entity.BillOfMaterial) decimal.Decimal { return supply.BOMCost(b, prices, uc.fallbackPrice) },
	), nil
}

// UpdateStatus aplica una transición (draft → active → obsolete).
func (uc *BOMUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.BOMResponse, error) {
	bom, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(bom.Status, status, entity.IsValidBOMStatus, bom.CanTransitionTo(status)); err != nil {
		return nil, err
	}
	now := time.Now()
	if err := uc.repo.UpdateStatus(ctx, bom.ID, status, now); err != nil {
		return nil, err
	}
	bom.Status = status
	bom.UpdatedAt = now
	return uc.single(ctx, bom)
}

// Explode requerimientos de componentes para fabricar units unidades.
func (uc *BOMUseCase) Explode(ctx context.Context, companyID, id string, units decimal.Decimal) (*dto.BOMExplosionResponse, error) {
	bom, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	reqs, err := supply.ExplodeBOM(bom, units)
	if err != nil {
		return nil, err
	}
	return &dto.BOMExplosionResponse{
		BomID:        bom.ID,
		Units:        units,
		Requirements: toRequirementDTOs(reqs),
	}, nil
}

// Cost costo de una unidad de producto valorizado con el catálogo.
func (uc *BOMUseCase) Cost(ctx context.Context, companyID, id string) (*dto.BOMCostResponse, error) {
	bom, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	prices, err := uc.priceBook(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.BOMCostResponse{BomID: bom.ID, UnitCost: supply.BOMCost(bom, prices, uc.fallbackPrice)}, nil
}

func (uc *BOMUseCase) get(ctx context.Context, companyID, id string) (*entity.BillOfMaterial, error) {
	bom, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	if bom.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return bom, nil
}

func (uc *BOMUseCase) priceBook(ctx context.Context, companyID string) (supply.PriceBook, error) {
	catalog, err := uc.componentRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar componentes: %w", err)
	}
	return supply.NewPriceBook(catalog), nil
}

func (uc *BOMUseCase) single(ctx context.Context, bom *entity.BillOfMaterial) (*dto.BOMResponse, error) {
	catalog, err := uc.componentRepo.ListByCompany(ctx, bom.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("listar componentes: %w", err)
	}
	return toBOMResponse(bom, catalog, uc.fallbackPrice), nil
}

func toBOMResponse(b *entity.BillOfMaterial, catalog []*entity.Component, fallback decimal.Decimal) *dto.BOMResponse {
	prices := supply.NewPriceBook(catalog)
	descriptions := make(map[string]string, len(catalog))
	for _, c := range catalog {
		descriptions[c.ComponentNumber] = c.Description
	}
	items := make([]dto.BomItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.BomItemResponse{
			ComponentNumber: it.ComponentNumber,
			Description:     lookup(descriptions, it.ComponentNumber),
			Quantity:        it.Quantity,
			UnitPrice:       prices.UnitPrice(it.ComponentNumber, fallback),
		})
	}
	return &dto.BOMResponse{
		ID:            b.ID,
		ProductNumber: b.ProductNumber,
		Name:          b.Name,
		Version:       b.Version,
		Status:        b.Status,
		ItemCount:     len(b.Items),
		UnitCost:      supply.BOMCost(b, prices, fallback),
		Items:         items,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toRequirementDTOs(reqs []supply.Requirement) []dto.RequirementDTO {
	out := make([]dto.RequirementDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, dto.RequirementDTO{ComponentNumber: r.ComponentNumber, Quantity: r.Quantity})
	}
	return out
}
