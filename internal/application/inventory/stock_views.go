package inventory

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/application/analytics"
	"github.com/jhoicas/supplychain-api/internal/application/ports"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// StockViews vistas cacheadas que se calculan a partir de las existencias:
// alertas de reorden y resumen del dashboard. Un valor nil o sin caché no hace nada.
type StockViews struct {
	cache ports.Cache
	log   *logger.Logger
}

// NewStockViews construye el invalidador. cache puede ser nil.
func NewStockViews(cache ports.Cache, log *logger.Logger) *StockViews {
	if log == nil {
		log = logger.Nop()
	}
	return &StockViews{cache: cache, log: log}
}

// Invalidate borra las vistas de la empresa tras una escritura confirmada.
// Un fallo de caché se registra; la escritura ya está hecha y el TTL acota lo obsoleto.
func (v *StockViews) Invalidate(ctx context.Context, companyID string) {
	if v == nil || v.cache == nil {
		return
	}
	if err := v.cache.Delete(ctx, ReorderAlertsKey(companyID), analytics.DashboardKey(companyID)); err != nil {
		v.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la caché de existencias")
	}
}
