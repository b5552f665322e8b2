package inventory

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

// Valores de estado derivados usados por ?status= en el listado de inventario.
const (
	StatusBelowReorder = "below_reorder"
	StatusOK           = "ok"
)

var inventoryListing = listing.Spec[dto.InventoryResponse]{
	Status: func(i dto.InventoryResponse) string {
		if i.NeedsReorder {
			return StatusBelowReorder
		}
		return StatusOK
	},
	Text: func(i dto.InventoryResponse) []string {
		return []string{i.ComponentNumber, i.Description, i.Location}
	},
	Sorters: map[string]listing.Comparator[dto.InventoryResponse]{
		"component_number": listing.ByString(func(i dto.InventoryResponse) string { return i.ComponentNumber }),
		"description":      listing.ByString(func(i dto.InventoryResponse) string { return i.Description }),
		"location":         listing.ByString(func(i dto.InventoryResponse) string { return i.Location }),
		"current_qty":      listing.ByDecimal(func(i dto.InventoryResponse) decimal.Decimal { return i.CurrentQty }),
		"reorder_point":    listing.ByDecimal(func(i dto.InventoryResponse) decimal.Decimal { return i.ReorderPoint }),
		"value":            listing.ByDecimal(func(i dto.InventoryResponse) decimal.Decimal { return i.Value }),
		"lead_time_days":   listing.ByInt(func(i dto.InventoryResponse) int { return i.LeadTimeDays }),
		"updated_at":       listing.ByTime(func(i dto.InventoryResponse) time.Time { return i.UpdatedAt }),
	},
}

// InventoryUseCase existencias por ubicación y sus métricas (punto de reorden, valorización).
type InventoryUseCase struct {
	txRunner      TxRunner
	repo          repository.InventoryRepository
	componentRepo repository.ComponentRepository
	fallbackPrice decimal.Decimal
	views         *StockViews
}

// NewInventoryUseCase construye el caso de uso. fallbackPrice valoriza componentes fuera del catálogo;
// views (opcional) se invalida después de cada cambio de cantidades.
func NewInventoryUseCase(
	txRunner TxRunner,
	repo repository.InventoryRepository,
	componentRepo repository.ComponentRepository,
	fallbackPrice decimal.Decimal,
	views *StockViews,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:      txRunner,
		repo:          repo,
		componentRepo: componentRepo,
		fallbackPrice: fallbackPrice,
		views:         views,
	}
}

// Upsert crea la existencia de (componente, ubicación) o actualiza la existente.
// La fila se bloquea (GetForUpdate) para no pisar una recepción concurrente.
func (uc *InventoryUseCase) Upsert(ctx context.Context, companyID string, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.CurrentQty.IsNegative() {
		return nil, fmt.Errorf("%w: current_qty no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := supply.CheckBounds("current_qty", in.CurrentQty); err != nil {
		return nil, err
	}
	if _, err := supply.ReorderPoint(in.DailyDemand, in.LeadTimeDays, in.SafetyStock); err != nil {
		return nil, err
	}
	now := time.Now()
	var saved *entity.WarehouseInventory
	err := uc.txRunner.Run(ctx, func(_ repository.PurchaseOrderRepository, invRepo repository.InventoryRepository) error {
		item, err := invRepo.GetForUpdate(ctx, companyID, in.ComponentNumber, in.Location)
		if err != nil {
			return err
		}
		if item == nil {
			item = &entity.WarehouseInventory{
				ID:              uuid.New().String(),
				CompanyID:       companyID,
				ComponentNumber: in.ComponentNumber,
				Location:        in.Location,
				CurrentQty:      in.CurrentQty,
				DailyDemand:     in.DailyDemand,
				LeadTimeDays:    in.LeadTimeDays,
				SafetyStock:     in.SafetyStock,
				UpdatedAt:       now,
			}
			saved = item
			return invRepo.Create(ctx, item)
		}
		item.CurrentQty = in.CurrentQty
		item.DailyDemand = in.DailyDemand
		item.LeadTimeDays = in.LeadTimeDays
		item.SafetyStock = in.SafetyStock
		item.UpdatedAt = now
		saved = item
		return invRepo.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	uc.views.Invalidate(ctx, companyID)
	return uc.single(ctx, saved)
}

// GetByID obtiene una existencia de la empresa.
func (uc *InventoryUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.InventoryResponse, error) {
	item, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.single(ctx, item)
}

// List existencias con búsqueda, filtro (below_reorder | ok) y orden.
func (uc *InventoryUseCase) List(ctx context.Context, companyID string, q listing.Query) (*dto.InventoryListResponse, error) {
	all, err := uc.responses(ctx, companyID)
	if err != nil {
		return nil, err
	}
	q.Normalize()
	page, total := listing.Apply(all, q, inventoryListing)
	return &dto.InventoryListResponse{
		Items: page,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// UpdateQuantity fija la cantidad actual de una existencia.
func (uc *InventoryUseCase) UpdateQuantity(ctx context.Context, companyID, id string, qty decimal.Decimal) (*dto.InventoryResponse, error) {
	if qty.IsNegative() {
		return nil, fmt.Errorf("%w: current_qty no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := supply.CheckBounds("current_qty", qty); err != nil {
		return nil, err
	}
	item, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	item.CurrentQty = qty
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	uc.views.Invalidate(ctx, companyID)
	return uc.single(ctx, item)
}

// Adjust suma delta a la existencia dentro de una transacción.
// Devuelve domain.ErrInsufficientStock si la cantidad resultante sería negativa.
func (uc *InventoryUseCase) Adjust(ctx context.Context, companyID, id string, delta decimal.Decimal) (*dto.InventoryResponse, error) {
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: delta no puede ser cero", domain.ErrInvalidInput)
	}
	if err := supply.CheckBounds("delta", delta); err != nil {
		return nil, err
	}
	current, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	var saved *entity.WarehouseInventory
	err = uc.txRunner.Run(ctx, func(_ repository.PurchaseOrderRepository, invRepo repository.InventoryRepository) error {
		item, err := invRepo.GetForUpdate(ctx, companyID, current.ComponentNumber, current.Location)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		next := item.CurrentQty.Add(delta)
		if next.IsNegative() {
			return domain.ErrInsufficientStock
		}
		item.CurrentQty = next
		item.UpdatedAt = time.Now()
		saved = item
		return invRepo.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	uc.views.Invalidate(ctx, companyID)
	return uc.single(ctx, saved)
}

// Value valoriza todo el inventario de la empresa: Σ current_qty × precio unitario.
func (uc *InventoryUseCase) Value(ctx context.Context, companyID string) (*dto.InventoryValueResponse, error) {
	items, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	prices, err := uc.priceBook(ctx, companyID)
	if err != nil {
		return nil, err
	}
	unpriced := 0
	for _, it := range items {
		if _, ok := prices[it.ComponentNumber]; !ok {
			unpriced++
		}
	}
	return &dto.InventoryValueResponse{
		TotalValue:        supply.InventoryValue(items, prices, uc.fallbackPrice),
		ItemCount:         len(items),
		FallbackUnitPrice: uc.fallbackPrice,
		UnpricedItems:     unpriced,
	}, nil
}

// BelowReorder existencias en o por debajo de su punto de reorden, calculadas en el momento.
func (uc *InventoryUseCase) BelowReorder(ctx context.Context, companyID string) (*dto.ReorderAlertsResponse, error) {
	items, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	alerts := ReorderAlerts(items)
	return &dto.ReorderAlertsResponse{
		CompanyID:   companyID,
		GeneratedAt: time.Now(),
		Total:       len(alerts),
		Alerts:      alerts,
	}, nil
}

// CalculateReorderPoint calculadora: demanda diaria × lead time + stock de seguridad.
func (uc *InventoryUseCase) CalculateReorderPoint(in dto.ReorderPointRequest) (*dto.ReorderPointResponse, error) {
	rp, err := supply.ReorderPoint(in.DailyDemand, in.LeadTimeDays, in.SafetyStock)
	if err != nil {
		return nil, err
	}
	return &dto.ReorderPointResponse{ReorderPoint: rp}, nil
}

func (uc *InventoryUseCase) get(ctx context.Context, companyID, id string) (*entity.WarehouseInventory, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func (uc *InventoryUseCase) priceBook(ctx context.Context, companyID string) (supply.PriceBook, error) {
	components, err := uc.componentRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar componentes: %w", err)
	}
	return supply.NewPriceBook(components), nil
}

func (uc *InventoryUseCase) responses(ctx context.Context, companyID string) ([]dto.InventoryResponse, error) {
	items, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	components, err := uc.componentRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar componentes: %w", err)
	}
	prices := supply.NewPriceBook(components)
	descriptions := make(map[string]string, len(components))
	for _, c := range components {
		descriptions[c.ComponentNumber] = c.Description
	}
	out := make([]dto.InventoryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toInventoryResponse(it, prices, descriptions, uc.fallbackPrice))
	}
	return out, nil
}

func (uc *InventoryUseCase) single(ctx context.Context, item *entity.WarehouseInventory) (*dto.InventoryResponse, error) {
	component, err := uc.componentRepo.GetByNumber(ctx, item.CompanyID, item.ComponentNumber)
	if err != nil {
		return nil, err
	}
	prices := supply.PriceBook{}
	descriptions := map[string]string{}
	if component != nil {
		prices[component.ComponentNumber] = component.UnitPrice
		descriptions[component.ComponentNumber] = component.Description
	}
	resp := toInventoryResponse(item, prices, descriptions, uc.fallbackPrice)
	return &resp, nil
}

func toInventoryResponse(
	it *entity.WarehouseInventory,
	prices supply.PriceBook,
	descriptions map[string]string,
	fallback decimal.Decimal,
) dto.InventoryResponse {
	description, ok := descriptions[it.ComponentNumber]
	if !ok {
		description = dto.NotAvailable
	}
	unitPrice := prices.UnitPrice(it.ComponentNumber, fallback)
	return dto.InventoryResponse{
		ID:              it.ID,
		ComponentNumber: it.ComponentNumber,
		Description:     description,
		Location:        it.Location,
		CurrentQty:      it.CurrentQty,
		DailyDemand:     it.DailyDemand,
		LeadTimeDays:    it.LeadTimeDays,
		SafetyStock:     it.SafetyStock,
		ReorderPoint:    supply.ItemReorderPoint(it),
		NeedsReorder:    supply.NeedsReorder(it),
		UnitPrice:       unitPrice,
		Value:           it.CurrentQty.Mul(unitPrice),
		UpdatedAt:       it.UpdatedAt,
	}
}
