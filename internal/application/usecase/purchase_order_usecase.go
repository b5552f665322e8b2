package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/inventory"
	"github.com/jhoicas/supplychain-api/internal/application/listing"
	"github.com/jhoicas/supplychain-api/internal/application/ports"
	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
	"github.com/jhoicas/supplychain-api/internal/domain/supply"
)

const defaultCurrency = "USD"

var purchaseOrderListing = listing.Spec[dto.PurchaseOrderResponse]{
	Status: func(p dto.PurchaseOrderResponse) string { return p.Status },
	Text: func(p dto.PurchaseOrderResponse) []string {
		return []string{p.PONumber, p.SupplierName}
	},
	Sorters: map[string]listing.Comparator[dto.PurchaseOrderResponse]{
		"po_number":     listing.ByString(func(p dto.PurchaseOrderResponse) string { return p.PONumber }),
		"supplier_name": listing.ByString(func(p dto.PurchaseOrderResponse) string { return p.SupplierName }),
		"status":        listing.ByString(func(p dto.PurchaseOrderResponse) string { return p.Status }),
		"total_amount":  listing.ByDecimal(func(p dto.PurchaseOrderResponse) decimal.Decimal { return p.TotalAmount }),
		"order_date":    listing.ByTime(func(p dto.PurchaseOrderResponse) time.Time { return p.OrderDate }),
		"expected_date": listing.ByOptionalTime(func(p dto.PurchaseOrderResponse) *time.Time { return p.ExpectedDate }),
	},
}

// PurchaseOrderUseCase ciclo de vida de órdenes de compra: alta, transiciones, recepción y PDF.
type PurchaseOrderUseCase struct {
	repo          repository.PurchaseOrderRepository
	supplierRepo  repository.SupplierRepository
	componentRepo repository.ComponentRepository
	companyRepo   repository.CompanyRepository
	txRunner      inventory.TxRunner
	pdf           ports.PurchaseOrderPDFGenerator
	views         *inventory.StockViews
}

// NewPurchaseOrderUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPurchaseOrderUseCase(
	repo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	componentRepo repository.ComponentRepository,
	companyRepo repository.CompanyRepository,
	txRunner inventory.TxRunner,
	pdf ports.PurchaseOrderPDFGenerator,
	views *inventory.StockViews,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		repo:          repo,
		supplierRepo:  supplierRepo,
		componentRepo: componentRepo,
		companyRepo:   companyRepo,
		txRunner:      txRunner,
		pdf:           pdf,
		views:         views,
	}
}

// Create registra una orden en estado draft. TotalAmount se calcula desde los ítems.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, companyID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	items := make([]entity.PurchaseOrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: ítem %s con cantidad o precio inválido", domain.ErrInvalidInput, it.ComponentNumber)
		}
		if err := checkBounds(it.Quantity, it.UnitPrice); err != nil {
			return nil, fmt.Errorf("ítem %s: %w", it.ComponentNumber, err)
		}
		items = append(items, entity.PurchaseOrderItem{
			ComponentNumber: it.ComponentNumber,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
		})
	}
	now := time.Now()
	number := in.PONumber
	if number == "" {
		number = documentNumber("PO", now)
	} else {
		existing, err := uc.repo.GetByNumber(ctx, companyID, number)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	orderDate := now
	if in.OrderDate != nil && !in.OrderDate.IsZero() {
		orderDate = *in.OrderDate
	}
	po := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		PONumber:     number,
		SupplierID:   in.SupplierID,
		Status:       entity.POStatusDraft,
		Currency:     currency,
		OrderDate:    orderDate,
		ExpectedDate: optionalTime(in.ExpectedDate),
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	po.ComputeTotal()
	if err := supply.CheckTotal("total_amount", po.TotalAmount); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	uc.views.Invalidate(ctx, companyID)
	return uc.single(ctx, po)
}

// GetByID obtiene una orden de la empresa.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.single(ctx, po)
}

// List órdenes con búsqueda (número, proveedor), filtro por estado y orden.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, companyID string, q listing.Query) (*dto.PurchaseOrderListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names, err := supplierNames(ctx, uc.supplierRepo, companyID)
	if err != nil {
		return nil, err
	}
	descriptions, err := componentDescriptions(ctx, uc.componentRepo, companyID)
	if err != nil {
		return nil, err
	}
	all := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		all = append(all, *toPurchaseOrderResponse(po, names, descriptions))
	}
	q.Normalize()
	page, total := listing.Apply(all, q, purchaseOrderListing)
	return &dto.PurchaseOrderListResponse{
		Items: page,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Stats conteo por estado y suma de TotalAmount.
func (uc *PurchaseOrderUseCase) Stats(ctx context.Context, companyID string) (*dto.StatsResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return buildStats(list,
		func(po *entity.PurchaseOrder) string { return po.Status },
		func(po *entity.PurchaseOrder) decimal.Decimal { return po.TotalAmount },
	), nil
}

// OpenAmount suma de órdenes aún no recibidas ni canceladas (compromiso de compra).
func (uc *PurchaseOrderUseCase) OpenAmount(ctx context.Context, companyID string) (decimal.Decimal, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return decimal.Zero, err
	}
	open := listing.Filter(list, func(po *entity.PurchaseOrder) bool {
		return po.Status != entity.POStatusReceived && po.Status != entity.POStatusCancelled
	})
	return listing.SumDecimal(open, func(po *entity.PurchaseOrder) decimal.Decimal { return po.TotalAmount }), nil
}

// UpdateStatus aplica una transición del ciclo de vida.
// La recepción no pasa por aquí: usar Receive para que el inventario se actualice.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if status == entity.POStatusReceived {
		return nil, fmt.Errorf("%w: la recepción se registra con POST /purchase-orders/%s/receive", domain.ErrInvalidTransition, id)
	}
	if err := checkTransition(po.Status, status, entity.IsValidPOStatus, po.CanTransitionTo(status)); err != nil {
		return nil, err
	}
	now := time.Now()
	if err := uc.repo.TransitionStatus(ctx, po.ID, po.Status, status, now); err != nil {
		return nil, err
	}
	po.Status = status
	po.UpdatedAt = now
	uc.views.Invalidate(ctx, companyID)
	return uc.single(ctx, po)
}

// Receive marca la orden como recibida y suma sus cantidades al inventario de location,
// todo en una sola transacción: si una existencia falla, la orden no cambia de estado.
// La orden se lee bloqueada, así dos recepciones simultáneas no suman el inventario dos veces.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, companyID, id, location string) (*dto.PurchaseOrderResponse, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: location es obligatorio", domain.ErrInvalidInput)
	}
	var received *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(poRepo repository.PurchaseOrderRepository, invRepo repository.InventoryRepository) error {
		po, err := poRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !po.CanTransitionTo(entity.POStatusReceived) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, po.Status, entity.POStatusReceived)
		}
		now := time.Now()
		for _, it := range po.Items {
			stock, err := invRepo.GetForUpdate(ctx, companyID, it.ComponentNumber, location)
			if err != nil {
				return err
			}
			if stock == nil {
				stock = &entity.WarehouseInventory{
					ID:              uuid.New().String(),
					CompanyID:       companyID,
					ComponentNumber: it.ComponentNumber,
					Location:        location,
					CurrentQty:      it.Quantity,
					UpdatedAt:       now,
				}
				if err := invRepo.Create(ctx, stock); err != nil {
					return err
				}
				continue
			}
			stock.CurrentQty = stock.CurrentQty.Add(it.Quantity)
			stock.UpdatedAt = now
			if err := invRepo.Update(ctx, stock); err != nil {
				return err
			}
		}
		if err := poRepo.TransitionStatus(ctx, po.ID, po.Status, entity.POStatusReceived, now); err != nil {
			return err
		}
		po.Status = entity.POStatusReceived
		po.UpdatedAt = now
		received = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.views.Invalidate(ctx, companyID)
	return uc.single(ctx, received)
}

// DownloadPDF genera el PDF de la orden.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la orden no existe.
//   - domain.ErrForbidden        si la orden no pertenece a la empresa del token.
func (uc *PurchaseOrderUseCase) DownloadPDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	po, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		company = &entity.Company{ID: companyID, Name: dto.NotAvailable}
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, po.SupplierID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener proveedor: %w", err)
	}
	if supplier == nil || supplier.CompanyID != companyID {
		supplier = &entity.Supplier{ID: po.SupplierID, Name: dto.NotAvailable}
	}
	descriptions, err := componentDescriptions(ctx, uc.componentRepo, companyID)
	if err != nil {
		return nil, "", err
	}
	lines := make([]ports.PurchaseOrderLine, 0, len(po.Items))
	for _, it := range po.Items {
		lines = append(lines, ports.PurchaseOrderLine{
			PurchaseOrderItem: it,
			Description:       lookup(descriptions, it.ComponentNumber),
			LineTotal:         it.LineTotal(),
		})
	}
	pdfBytes, err := uc.pdf.GeneratePurchaseOrderPDF(ctx, po, company, supplier, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("orden_compra_%s.pdf", po.PONumber), nil
}

func (uc *PurchaseOrderUseCase) get(ctx context.Context, companyID, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return po, nil
}

func (uc *PurchaseOrderUseCase) single(ctx context.Context, po *entity.PurchaseOrder) (*dto.PurchaseOrderResponse, error) {
	names := map[string]string{}
	supplier, err := uc.supplierRepo.GetByID(ctx, po.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier != nil && supplier.CompanyID == po.CompanyID {
		names[supplier.ID] = supplier.Name
	}
	descriptions, err := componentDescriptions(ctx, uc.componentRepo, po.CompanyID)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po, names, descriptions), nil
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder, supplierNames, descriptions map[string]string) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ComponentNumber: it.ComponentNumber,
			Description:     lookup(descriptions, it.ComponentNumber),
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			LineTotal:       it.LineTotal(),
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:           po.ID,
		PONumber:     po.PONumber,
		SupplierID:   po.SupplierID,
		SupplierName: lookup(supplierNames, po.SupplierID),
		Status:       po.Status,
		Currency:     po.Currency,
		OrderDate:    po.OrderDate,
		ExpectedDate: po.ExpectedDate,
		TotalAmount:  po.TotalAmount,
		Items:        items,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	}
}
