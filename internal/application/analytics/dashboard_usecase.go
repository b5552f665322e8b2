// Package analytics contiene el resumen del dashboard: KPIs de inventario,
// compras, logística y producción en una sola respuesta.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/ports"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// StatsSource módulo que sabe agregar sus registros por estado.
type StatsSource interface {
	Stats(ctx context.Context, companyID string) (*dto.StatsResponse, error)
}

// InventorySource valorización y alertas del inventario.
type InventorySource interface {
	Value(ctx context.Context, companyID string) (*dto.InventoryValueResponse, error)
	BelowReorder(ctx context.Context, companyID string) (*dto.ReorderAlertsResponse, error)
}

// PurchaseSource estadísticas de compras más el monto comprometido.
type PurchaseSource interface {
	StatsSource
	OpenAmount(ctx context.Context, companyID string) (decimal.Decimal, error)
}

// Sources módulos consultados por el dashboard.
type Sources struct {
	Inventory      InventorySource
	PurchaseOrders PurchaseSource
	Shipments      StatsSource
	RFQs           StatsSource
	BOMs           StatsSource
	WorkOrders     StatsSource
}

// DashboardKey clave de caché del resumen de una empresa.
func DashboardKey(companyID string) string { return "dashboard:" + companyID }

// DashboardUseCase genera el resumen del dashboard.
// Las consultas a cada módulo corren en paralelo; el resultado se cachea ttl si hay caché.
type DashboardUseCase struct {
	src   Sources
	cache ports.Cache // opcional
	ttl   time.Duration
	log   *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(src Sources, cache ports.Cache, ttl time.Duration, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{src: src, cache: cache, ttl: ttl, log: log}
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	if uc.cache != nil {
		var cached dto.DashboardSummaryDTO
		found, err := uc.cache.Get(ctx, DashboardKey(companyID), &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("company_id", companyID).Msg("dashboard: lectura de caché fallida")
		}
		if found {
			return &cached, nil
		}
	}

	var (
		out    dto.DashboardSummaryDTO
		value  *dto.InventoryValueResponse
		alerts *dto.ReorderAlertsResponse
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		value, err = uc.src.Inventory.Value(gctx, companyID)
		return wrap("valor de inventario", err)
	})
	g.Go(func() (err error) {
		alerts, err = uc.src.Inventory.BelowReorder(gctx, companyID)
		return wrap("alertas de reorden", err)
	})
	g.Go(func() (err error) {
		out.OpenPurchaseAmount, err = uc.src.PurchaseOrders.OpenAmount(gctx, companyID)
		return wrap("compras abiertas", err)
	})
	stats := []struct {
		name string
		src  StatsSource
		dst  *dto.StatsResponse
	}{
		{"órdenes de compra", uc.src.PurchaseOrders, &out.PurchaseOrders},
		{"envíos", uc.src.Shipments, &out.Shipments},
		{"rfqs", uc.src.RFQs, &out.RFQs},
		{"boms", uc.src.BOMs, &out.BOMs},
		{"órdenes de trabajo", uc.src.WorkOrders, &out.WorkOrders},
	}
	for _, s := range stats {
		g.Go(func() error {
			res, err := s.src.Stats(gctx, companyID)
			if err != nil {
				return wrap(s.name, err)
			}
			*s.dst = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.InventoryValue = value.TotalValue.Round(2)
	out.InventoryItems = value.ItemCount
	out.ItemsBelowReorder = alerts.Total

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, DashboardKey(companyID), &out, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("company_id", companyID).Msg("dashboard: escritura de caché fallida")
		}
	}
	return &out, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}
