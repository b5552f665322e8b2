package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/ports"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
	"github.com/jhoicas/supplychain-api/internal/domain/supply"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// ReorderAlertsKey clave de caché de las alertas de reorden de una empresa.
func ReorderAlertsKey(companyID string) string { return "reorder_alerts:" + companyID }

// ReorderAlerts existencias en o por debajo de su punto de reorden con la cantidad sugerida.
// Las existencias con punto de reorden 0 no aparecen (ver supply.NeedsReorder).
// Orden: mayor déficit (RP − cantidad) primero; empate por número de componente y ubicación.
func ReorderAlerts(items []*entity.WarehouseInventory) []dto.ReorderAlertDTO {
	alerts := make([]dto.ReorderAlertDTO, 0)
	for _, it := range items {
		if !supply.NeedsReorder(it) {
			continue
		}
		alerts = append(alerts, dto.ReorderAlertDTO{
			InventoryID:       it.ID,
			ComponentNumber:   it.ComponentNumber,
			Location:          it.Location,
			CurrentQty:        it.CurrentQty,
			ReorderPoint:      supply.ItemReorderPoint(it),
			SuggestedOrderQty: supply.SuggestedOrderQty(it),
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		defA := a.ReorderPoint.Sub(a.CurrentQty)
		defB := b.ReorderPoint.Sub(b.CurrentQty)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		if a.ComponentNumber != b.ComponentNumber {
			return a.ComponentNumber < b.ComponentNumber
		}
		return a.Location < b.Location
	})
	return alerts
}

// ReplenishmentUseCase escaneo de reorden en segundo plano.
// El worker ejecuta Scan y deja el resultado en caché; la API lo lee con Alerts.
type ReplenishmentUseCase struct {
	repo     repository.InventoryRepository
	cache    ports.Cache        // opcional
	enqueuer ports.TaskEnqueuer // opcional: sin cola el escaneo corre en línea
	ttl      time.Duration
	log      *logger.Logger
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	repo repository.InventoryRepository,
	cache ports.Cache,
	enqueuer ports.TaskEnqueuer,
	ttl time.Duration,
	log *logger.Logger,
) *ReplenishmentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReplenishmentUseCase{repo: repo, cache: cache, enqueuer: enqueuer, ttl: ttl, log: log}
}

// Scan calcula las alertas de la empresa y las guarda en caché.
// Un fallo de caché se registra pero no invalida el resultado.
func (uc *ReplenishmentUseCase) Scan(ctx context.Context, companyID string) (*dto.ReorderAlertsResponse, error) {
	items, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("reorder scan: %w", err)
	}
	alerts := ReorderAlerts(items)
	res := &dto.ReorderAlertsResponse{
		CompanyID:   companyID,
		GeneratedAt: time.Now().UTC(),
		Total:       len(alerts),
		Alerts:      alerts,
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, ReorderAlertsKey(companyID), res, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo cachear alertas de reorden")
		}
	}
	uc.log.Info().Str("company_id", companyID).Int("alerts", len(alerts)).Msg("escaneo de reorden completado")
	return res, nil
}

// RequestScan encola el escaneo. Sin cola configurada lo ejecuta en línea.
func (uc *ReplenishmentUseCase) RequestScan(ctx context.Context, companyID string) (*dto.ReorderScanResponse, error) {
	if uc.enqueuer == nil {
		if _, err := uc.Scan(ctx, companyID); err != nil {
			return nil, err
		}
		return &dto.ReorderScanResponse{Queued: false}, nil
	}
	taskID, err := uc.enqueuer.EnqueueReorderScan(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("encolar escaneo de reorden: %w", err)
	}
	return &dto.ReorderScanResponse{TaskID: taskID, Queued: true}, nil
}

// Alerts devuelve el último escaneo cacheado; si no hay, escanea en el momento.
func (uc *ReplenishmentUseCase) Alerts(ctx context.Context, companyID string) (*dto.ReorderAlertsResponse, error) {
	if uc.cache != nil {
		var cached dto.ReorderAlertsResponse
		found, err := uc.cache.Get(ctx, ReorderAlertsKey(companyID), &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("company_id", companyID).Msg("lectura de caché fallida")
		}
		if found {
			return &cached, nil
		}
	}
	return uc.Scan(ctx, companyID)
}
