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
)

var shipmentListing = listing.Spec[dto.ShipmentResponse]{
	Status: func(s dto.ShipmentResponse) string { return s.Status },
	Text: func(s dto.ShipmentResponse) []string {
		return []string{s.PONumber, s.Carrier, s.TrackingNumber}
	},
	Sorters: map[string]listing.Comparator[dto.ShipmentResponse]{
		"po_number":         listing.ByString(func(s dto.ShipmentResponse) string { return s.PONumber }),
		"carrier":           listing.ByString(func(s dto.ShipmentResponse) string { return s.Carrier }),
		"status":            listing.ByString(func(s dto.ShipmentResponse) string { return s.Status }),
		"shipped_at":        listing.ByOptionalTime(func(s dto.ShipmentResponse) *time.Time { return s.ShippedAt }),
		"estimated_arrival": listing.ByOptionalTime(func(s dto.ShipmentResponse) *time.Time { return s.EstimatedArrival }),
		"created_at":        listing.ByTime(func(s dto.ShipmentResponse) time.Time { return s.CreatedAt }),
	},
}

// ShipmentUseCase seguimiento de envíos asociados a órdenes de compra.
type ShipmentUseCase struct {
	repo   repository.ShipmentRepository
	poRepo repository.PurchaseOrderRepository
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(repo repository.ShipmentRepository, poRepo repository.PurchaseOrderRepository) *ShipmentUseCase {
	return &ShipmentUseCase{repo: repo, poRepo: poRepo}
}

// Create registra un envío pendiente para una orden de compra de la empresa.
func (uc *ShipmentUseCase) Create(ctx context.Context, companyID string, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, in.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po == nil || po.CompanyID != companyID {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, in.PurchaseOrderID)
	}
	if po.Status == entity.POStatusCancelled {
		return nil, fmt.Errorf("%w: la orden de compra está cancelada", domain.ErrConflict)
	}
	now := time.Now()
	shipment := &entity.Shipment{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		PurchaseOrderID:  po.ID,
		Carrier:          in.Carrier,
		TrackingNumber:   in.TrackingNumber,
		Status:           entity.ShipmentStatusPending,
		ShippedAt:        optionalTime(in.ShippedAt),
		EstimatedArrival: optionalTime(in.EstimatedArrival),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, shipment); err != nil {
		return nil, err
	}
	return toShipmentResponse(shipment, map[string]string{po.ID: po.PONumber}), nil
}

// GetByID obtiene un envío de la empresa.
func (uc *ShipmentUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ShipmentResponse, error) {
	shipment, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.single(ctx, shipment)
}

// List envíos con búsqueda (orden, transportadora, guía), filtro por estado y orden.
func (uc *ShipmentUseCase) List(ctx context.Context, companyID string, q listing.Query) (*dto.ShipmentListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	orders, err := uc.poRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	numbers := make(map[string]string, len(orders))
	for _, po := range orders {
		numbers[po.ID] = po.PONumber
	}
	all := make([]dto.ShipmentResponse, 0, len(list))
	for _, s := range list {
		all = append(all, *toShipmentResponse(s, numbers))
	}
	q.Normalize()
	page, total := listing.Apply(all, q, shipmentListing)
	return &dto.ShipmentListResponse{
		Items: page,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Stats conteo por estado; total_amount es el valor de las órdenes despachadas.
func (uc *ShipmentUseCase) Stats(ctx context.Context, companyID string) (*dto.StatsResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	orders, err := uc.poRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	amounts := make(map[string]decimal.Decimal, len(orders))
	for _, po := range orders {
		amounts[po.ID] = po.TotalAmount
	}
	return buildStats(list,
		func(s *entity.Shipment) string { return s.Status },
		func(s *entity.Shipment) decimal.Decimal { return amounts[s.PurchaseOrderID] },
	), nil
}

// UpdateStatus aplica una transición. in_transit fija ShippedAt si faltaba; delivered fija DeliveredAt.
func (uc *ShipmentUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.ShipmentResponse, error) {
	shipment, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(shipment.Status, status, entity.IsValidShipmentStatus, shipment.CanTransitionTo(status)); err != nil {
		return nil, err
	}
	now := time.Now()
	switch status {
	case entity.ShipmentStatusInTransit:
		if shipment.ShippedAt == nil {
			shipment.ShippedAt = &now
		}
	case entity.ShipmentStatusDelivered:
		shipment.DeliveredAt = &now
		if shipment.ShippedAt == nil {
			shipment.ShippedAt = &now
		}
	}
	shipment.Status = status
	shipment.UpdatedAt = now
	if err := uc.repo.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return uc.single(ctx, shipment)
}

func (uc *ShipmentUseCase) get(ctx context.Context, companyID, id string) (*entity.Shipment, error) {
	shipment, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}
	if shipment.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return shipment, nil
}

func (uc *ShipmentUseCase) single(ctx context.Context, s *entity.Shipment) (*dto.ShipmentResponse, error) {
	numbers := map[string]string{}
	po, err := uc.poRepo.GetByID(ctx, s.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po != nil && po.CompanyID == s.CompanyID {
		numbers[po.ID] = po.PONumber
	}
	return toShipmentResponse(s, numbers), nil
}

func toShipmentResponse(s *entity.Shipment, poNumbers map[string]string) *dto.ShipmentResponse {
	return &dto.ShipmentResponse{
		ID:               s.ID,
		PurchaseOrderID:  s.PurchaseOrderID,
		PONumber:         lookup(poNumbers, s.PurchaseOrderID),
		Carrier:          s.Carrier,
		TrackingNumber:   s.TrackingNumber,
		Status:           s.Status,
		ShippedAt:        s.ShippedAt,
		EstimatedArrival: s.EstimatedArrival,
		DeliveredAt:      s.DeliveredAt,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
