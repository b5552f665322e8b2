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

var workOrderListing = listing.Spec[dto.WorkOrderResponse]{
	Status: func(w dto.WorkOrderResponse) string { return w.Status },
	Text:   func(w dto.WorkOrderResponse) []string { return []string{w.WONumber, w.ProductName} },
	Sorters: map[string]listing.Comparator[dto.WorkOrderResponse]{
		"wo_number":    listing.ByString(func(w dto.WorkOrderResponse) string { return w.WONumber }),
		"product_name": listing.ByString(func(w dto.WorkOrderResponse) string { return w.ProductName }),
		"status":       listing.ByString(func(w dto.WorkOrderResponse) string { return w.Status }),
		"priority":     listing.ByInt(func(w dto.WorkOrderResponse) int { return entity.PriorityRank(w.Priority) }),
		"quantity":     listing.ByDecimal(func(w dto.WorkOrderResponse) decimal.Decimal { return w.Quantity }),
		"start_date":   listing.ByOptionalTime(func(w dto.WorkOrderResponse) *time.Time { return w.StartDate }),
		"due_date":     listing.ByOptionalTime(func(w dto.WorkOrderResponse) *time.Time { return w.DueDate }),
	},
}

// WorkOrderUseCase órdenes de fabricación y sus requerimientos de material.
type WorkOrderUseCase struct {
	repo          repository.WorkOrderRepository
	bomRepo       repository.BOMRepository
	invRepo       repository.InventoryRepository
	componentRepo repository.ComponentRepository
	fallbackPrice decimal.Decimal
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(
	repo repository.WorkOrderRepository,
	bomRepo repository.BOMRepository,
	invRepo repository.InventoryRepository,
	componentRepo repository.ComponentRepository,
	fallbackPrice decimal.Decimal,
) *WorkOrderUseCase {
	return &WorkOrderUseCase{
		repo:          repo,
		bomRepo:       bomRepo,
		invRepo:       invRepo,
		componentRepo: componentRepo,
		fallbackPrice: fallbackPrice,
	}
}

// Create planifica una orden sobre una BOM de la empresa. Una BOM obsoleta no admite nuevas órdenes.
func (uc *WorkOrderUseCase) Create(ctx context.Context, companyID string, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity debe ser positiva", domain.ErrInvalidInput)
	}
	if err := supply.CheckBounds("quantity", in.Quantity); err != nil {
		return nil, err
	}
	bom, err := uc.bomRepo.GetByID(ctx, in.BomID)
	if err != nil {
		return nil, err
	}
	if bom == nil || bom.CompanyID != companyID {
		return nil, fmt.Errorf("%w: bom %s", domain.ErrNotFound, in.BomID)
	}
	if bom.Status == entity.BOMStatusObsolete {
		return nil, fmt.Errorf("%w: la BOM está obsoleta", domain.ErrConflict)
	}
	startDate, dueDate := optionalTime(in.StartDate), optionalTime(in.DueDate)
	if startDate != nil && dueDate != nil && dueDate.Before(*startDate) {
		return nil, fmt.Errorf("%w: due_date anterior a start_date", domain.ErrInvalidInput)
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	now := time.Now()
	number := in.WONumber
	if number == "" {
		number = documentNumber("WO", now)
	}
	wo := &entity.WorkOrder{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		WONumber:  number,
		BomID:     bom.ID,
		Quantity:  in.Quantity,
		Status:    entity.WOStatusPlanned,
		Priority:  priority,
		StartDate: startDate,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, wo); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(wo, map[string]string{bom.ID: bom.Name}), nil
}

// GetByID obtiene una orden de trabajo de la empresa.
func (uc *WorkOrderUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.WorkOrderResponse, error) {
	wo, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.single(ctx, wo)
}

// List órdenes con búsqueda, filtro por estado y orden (priority ordena high > medium > low).
func (uc *WorkOrderUseCase) List(ctx context.Context, companyID string, q listing.Query) (*dto.WorkOrderListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names, err := uc.bomNames(ctx, companyID)
	if err != nil {
		return nil, err
	}
	all := make([]dto.WorkOrderResponse, 0, len(list))
	for _, wo := range list {
		all = append(all, *toWorkOrderResponse(wo, names))
	}
	q.Normalize()
	page, total := listing.Apply(all, q, workOrderListing)
	return &dto.WorkOrderListResponse{
		Items: page,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Stats conteo por estado; total_amount es el costo estimado de material (costo BOM × cantidad).
func (uc *WorkOrderUseCase) Stats(ctx context.Context, companyID string) (*dto.StatsResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	boms, err := uc.bomRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	catalog, err := uc.componentRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	prices := supply.NewPriceBook(catalog)
	unitCost := make(map[string]decimal.Decimal, len(boms))
	for _, b := range boms {
		unitCost[b.ID] = supply.BOMCost(b, prices, uc.fallbackPrice)
	}
	return buildStats(list,
		func(w *entity.WorkOrder) string { return w.Status },
		func(w *entity.WorkOrder) decimal.Decimal { return unitCost[w.BomID].Mul(w.Quantity) },
	), nil
}

// UpdateStatus aplica una transición. completed fija CompletedAt; in_progress fija StartDate si faltaba.
func (uc *WorkOrderUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.WorkOrderResponse, error) {
	wo, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(wo.Status, status, entity.IsValidWOStatus, wo.CanTransitionTo(status)); err != nil {
		return nil, err
	}
	now := time.Now()
	switch status {
	case entity.WOStatusInProgress:
		if wo.StartDate == nil {
			wo.StartDate = &now
		}
	case entity.WOStatusCompleted:
		wo.CompletedAt = &now
	}
	wo.Status = status
	wo.UpdatedAt = now
	if err := uc.repo.Update(ctx, wo); err != nil {
		return nil, err
	}
	return uc.single(ctx, wo)
}

// Requirements explota la BOM por la cantidad de la orden y la compara contra el inventario.
func (uc *WorkOrderUseCase) Requirements(ctx context.Context, companyID, id string) (*dto.WorkOrderRequirementsResponse, error) {
	wo, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	bom, err := uc.bomRepo.GetByID(ctx, wo.BomID)
	if err != nil {
		return nil, err
	}
	if bom == nil || bom.CompanyID != companyID {
		return nil, fmt.Errorf("%w: bom %s", domain.ErrNotFound, wo.BomID)
	}
	reqs, err := supply.ExplodeBOM(bom, wo.Quantity)
	if err != nil {
		return nil, err
	}
	stock, err := uc.invRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	shortages := supply.MaterialShortages(reqs, supply.OnHand(stock))
	out := make([]dto.ShortageDTO, 0, len(shortages))
	for _, s := range shortages {
		out = append(out, dto.ShortageDTO{
			ComponentNumber: s.ComponentNumber,
			Required:        s.Required,
			Available:       s.Available,
			Missing:         s.Missing,
		})
	}
	return &dto.WorkOrderRequirementsResponse{
		WorkOrderID:  wo.ID,
		Requirements: toRequirementDTOs(reqs),
		Shortages:    out,
		CanStart:     len(out) == 0,
	}, nil
}

func (uc *WorkOrderUseCase) get(ctx context.Context, companyID, id string) (*entity.WorkOrder, error) {
	wo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, domain.ErrNotFound
	}
	if wo.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return wo, nil
}

func (uc *WorkOrderUseCase) bomNames(ctx context.Context, companyID string) (map[string]string, error) {
	boms, err := uc.bomRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar boms: %w", err)
	}
	out := make(map[string]string, len(boms))
	for _, b := range boms {
		out[b.ID] = b.Name
	}
	return out, nil
}

func (uc *WorkOrderUseCase) single(ctx context.Context, wo *entity.WorkOrder) (*dto.WorkOrderResponse, error) {
	names := map[string]string{}
	bom, err := uc.bomRepo.GetByID(ctx, wo.BomID)
	if err != nil {
		return nil, err
	}
	if bom != nil && bom.CompanyID == wo.CompanyID {
		names[bom.ID] = bom.Name
	}
	return toWorkOrderResponse(wo, names), nil
}

func toWorkOrderResponse(w *entity.WorkOrder, bomNames map[string]string) *dto.WorkOrderResponse {
	return &dto.WorkOrderResponse{
		ID:          w.ID,
		WONumber:    w.WONumber,
		BomID:       w.BomID,
		ProductName: lookup(bomNames, w.BomID),
		Quantity:    w.Quantity,
		Status:      w.Status,
		Priority:    w.Priority,
		StartDate:   w.StartDate,
		DueDate:     w.DueDate,
		CompletedAt: w.CompletedAt,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
