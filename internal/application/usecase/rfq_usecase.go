package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/listing"
	"github.com/jhoicas/supplychain-api/internal/application/ports"
	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
	"github.com/jhoicas/supplychain-api/internal/domain/supply"
)

var rfqListing = listing.Spec[dto.RFQResponse]{
	Status: func(r dto.RFQResponse) string { return r.Status },
	Text: func(r dto.RFQResponse) []string {
		return []string{r.RFQNumber, r.Title, r.SupplierName}
	},
	Sorters: map[string]listing.Comparator[dto.RFQResponse]{
		"rfq_number":    listing.ByString(func(r dto.RFQResponse) string { return r.RFQNumber }),
		"title":         listing.ByString(func(r dto.RFQResponse) string { return r.Title }),
		"supplier_name": listing.ByString(func(r dto.RFQResponse) string { return r.SupplierName }),
		"status":        listing.ByString(func(r dto.RFQResponse) string { return r.Status }),
		"issue_date":    listing.ByTime(func(r dto.RFQResponse) time.Time { return r.IssueDate }),
		"due_date":      listing.ByOptionalTime(func(r dto.RFQResponse) *time.Time { return r.DueDate }),
		"quoted_amount": listing.ByDecimal(func(r dto.RFQResponse) decimal.Decimal { return quoted(r.QuotedAmount) }),
	},
}

// RFQUseCase solicitudes de cotización: alta, envío, respuesta del proveedor y documento XML.
type RFQUseCase struct {
	repo          repository.RFQRepository
	supplierRepo  repository.SupplierRepository
	componentRepo repository.ComponentRepository
	companyRepo   repository.CompanyRepository
	documents     ports.RFQDocumentBuilder
}

// NewRFQUseCase construye el caso de uso.
func NewRFQUseCase(
	repo repository.RFQRepository,
	supplierRepo repository.SupplierRepository,
	componentRepo repository.ComponentRepository,
	companyRepo repository.CompanyRepository,
	documents ports.RFQDocumentBuilder,
) *RFQUseCase {
	return &RFQUseCase{
		repo:          repo,
		supplierRepo:  supplierRepo,
		componentRepo: componentRepo,
		companyRepo:   companyRepo,
		documents:     documents,
	}
}

// Create registra una RFQ en estado draft.
func (uc *RFQUseCase) Create(ctx context.Context, companyID string, in dto.CreateRFQRequest) (*dto.RFQResponse, error) {
	items := make([]entity.RFQItem, 0, len(in.Items))
	for _, it := range in.Items {
		if !it.Quantity.IsPositive() || it.TargetPrice.IsNegative() {
			return nil, fmt.Errorf("%w: ítem %s con cantidad o precio objetivo inválido", domain.ErrInvalidInput, it.ComponentNumber)
		}
		if err := checkBounds(it.Quantity, it.TargetPrice); err != nil {
			return nil, fmt.Errorf("ítem %s: %w", it.ComponentNumber, err)
		}
		items = append(items, entity.RFQItem{
			ComponentNumber: it.ComponentNumber,
			Quantity:        it.Quantity,
			TargetPrice:     it.TargetPrice,
		})
	}
	now := time.Now()
	issueDate := now
	if in.IssueDate != nil && !in.IssueDate.IsZero() {
		issueDate = *in.IssueDate
	}
	dueDate := optionalTime(in.DueDate)
	if dueDate != nil && dueDate.Before(issueDate) {
		return nil, fmt.Errorf("%w: due_date anterior a issue_date", domain.ErrInvalidInput)
	}
	number := in.RFQNumber
	if number == "" {
		number = documentNumber("RFQ", now)
	}
	rfq := &entity.RequestForQuotation{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		RFQNumber:  number,
		Title:      in.Title,
		SupplierID: in.SupplierID,
		Status:     entity.RFQStatusDraft,
		IssueDate:  issueDate,
		DueDate:    dueDate,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, rfq); err != nil {
		return nil, err
	}
	return uc.single(ctx, rfq)
}

// GetByID obtiene una RFQ de la empresa.
func (uc *RFQUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.RFQResponse, error) {
	rfq, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.single(ctx, rfq)
}

// List RFQs con búsqueda, filtro por estado y orden.
func (uc *RFQUseCase) List(ctx context.Context, companyID string, q listing.Query) (*dto.RFQListResponse, error) {
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
	all := make([]dto.RFQResponse, 0, len(list))
	for _, r := range list {
		all = append(all, *toRFQResponse(r, names, descriptions))
	}
	q.Normalize()
	page, total := listing.Apply(all, q, rfqListing)
	return &dto.RFQListResponse{
		Items: page,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Stats conteo por estado; total_amount suma los montos cotizados recibidos.
func (uc *RFQUseCase) Stats(ctx context.Context, companyID string) (*dto.StatsResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return buildStats(list,
		func(r *entity.RequestForQuotation) string { return r.Status },
		func(r *entity.RequestForQuotation) decimal.Decimal { return quoted(r.QuotedAmount) },
	), nil
}

// UpdateStatus aplica una transición. responded exige haber registrado la cotización (Quote).
func (uc *RFQUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.RFQResponse, error) {
	rfq, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(rfq.Status, status, entity.IsValidRFQStatus, rfq.CanTransitionTo(status)); err != nil {
		return nil, err
	}
	if status == entity.RFQStatusResponded && rfq.QuotedAmount == nil {
		return nil, fmt.Errorf("%w: registre la cotización del proveedor", domain.ErrInvalidTransition)
	}
	rfq.Status = status
	rfq.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, rfq); err != nil {
		return nil, err
	}
	return uc.single(ctx, rfq)
}

// Quote registra el monto cotizado por el proveedor y pasa la RFQ a responded.
func (uc *RFQUseCase) Quote(ctx context.Context, companyID, id string, amount decimal.Decimal) (*dto.RFQResponse, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: quoted_amount debe ser positivo", domain.ErrInvalidInput)
	}
	if err := supply.CheckBounds("quoted_amount", amount); err != nil {
		return nil, err
	}
	rfq, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !rfq.CanTransitionTo(entity.RFQStatusResponded) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, rfq.Status, entity.RFQStatusResponded)
	}
	rfq.QuotedAmount = &amount
	rfq.Status = entity.RFQStatusResponded
	rfq.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, rfq); err != nil {
		return nil, err
	}
	return uc.single(ctx, rfq)
}

// Document construye el XML de la RFQ para el proveedor junto con su digest canónico.
func (uc *RFQUseCase) Document(ctx context.Context, companyID, id string) (*ports.RFQDocument, string, error) {
	rfq, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("xml: obtener empresa: %w", err)
	}
	if company == nil {
		company = &entity.Company{ID: companyID, Name: dto.NotAvailable}
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, rfq.SupplierID)
	if err != nil {
		return nil, "", fmt.Errorf("xml: obtener proveedor: %w", err)
	}
	if supplier == nil || supplier.CompanyID != companyID {
		supplier = &entity.Supplier{ID: rfq.SupplierID, Name: dto.NotAvailable}
	}
	descriptions, err := componentDescriptions(ctx, uc.componentRepo, companyID)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.documents.BuildRFQDocument(ctx, rfq, company, supplier, descriptions)
	if err != nil {
		return nil, "", fmt.Errorf("xml: generación fallida: %w", err)
	}
	return doc, fmt.Sprintf("rfq_%s.xml", rfq.RFQNumber), nil
}

func (uc *RFQUseCase) get(ctx context.Context, companyID, id string) (*entity.RequestForQuotation, error) {
	rfq, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rfq == nil {
		return nil, domain.ErrNotFound
	}
	if rfq.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return rfq, nil
}

func (uc *RFQUseCase) single(ctx context.Context, rfq *entity.RequestForQuotation) (*dto.RFQResponse, error) {
	names := map[string]string{}
	supplier, err := uc.supplierRepo.GetByID(ctx, rfq.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier != nil && supplier.CompanyID == rfq.CompanyID {
		names[supplier.ID] = supplier.Name
	}
	descriptions, err := componentDescriptions(ctx, uc.componentRepo, rfq.CompanyID)
	if err != nil {
		return nil, err
	}
	return toRFQResponse(rfq, names, descriptions), nil
}

func quoted(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func toRFQResponse(r *entity.RequestForQuotation, supplierNames, descriptions map[string]string) *dto.RFQResponse {
	items := make([]dto.RFQItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.RFQItemResponse{
			ComponentNumber: it.ComponentNumber,
			Description:     lookup(descriptions, it.ComponentNumber),
			Quantity:        it.Quantity,
			TargetPrice:     it.TargetPrice,
		})
	}
	return &dto.RFQResponse{
		ID:           r.ID,
		RFQNumber:    r.RFQNumber,
		Title:        r.Title,
		SupplierID:   r.SupplierID,
		SupplierName: lookup(supplierNames, r.SupplierID),
		Status:       r.Status,
		IssueDate:    r.IssueDate,
		DueDate:      r.DueDate,
		QuotedAmount: r.QuotedAmount,
		Items:        items,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
