package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/supplychain-api/internal/application/inventory"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/memory"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/postgres"
	"github.com/jhoicas/supplychain-api/pkg/config"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// repositories implementaciones elegidas según STORAGE.
type repositories struct {
	companies  repository.CompanyRepository
	users      repository.UserRepository
	suppliers  repository.SupplierRepository
	components repository.ComponentRepository
	inventory  repository.InventoryRepository
	orders     repository.PurchaseOrderRepository
	shipments  repository.ShipmentRepository
	boms       repository.BOMRepository
	workOrders repository.WorkOrderRepository
	rfqs       repository.RFQRepository
	tx         inventory.TxRunner
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.App.Storage == config.StorageMemory {
		return openMemory(ctx, cfg, log)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &repositories{
		companies:  postgres.NewCompanyRepository(pool),
		users:      postgres.NewUserRepository(pool),
		suppliers:  postgres.NewSupplierRepository(pool),
		components: postgres.NewComponentRepository(pool),
		inventory:  postgres.NewInventoryRepository(pool),
		orders:     postgres.NewPurchaseOrderRepository(pool),
		shipments:  postgres.NewShipmentRepository(pool),
		boms:       postgres.NewBOMRepository(pool),
		workOrders: postgres.NewWorkOrderRepository(pool),
		rfqs:       postgres.NewRFQRepository(pool),
		tx:         postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}

// openMemory almacenamiento volátil con el tenant demo sembrado.
func openMemory(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	store := memory.NewStore()
	tenant, err := memory.SeedDemo(ctx, store, cfg.App.DemoPassword)
	if err != nil {
		return nil, err
	}
	ev := log.Warn().Str("company_id", tenant.CompanyID)
	for role, email := range tenant.Users {
		ev = ev.Str(role, email)
	}
	ev.Msg("STORAGE=memory: datos de demostración, se pierden al reiniciar")

	return &repositories{
		companies:  memory.NewCompanyRepository(store),
		users:      memory.NewUserRepository(store),
		suppliers:  memory.NewSupplierRepository(store),
		components: memory.NewComponentRepository(store),
		inventory:  memory.NewInventoryRepository(store),
		orders:     memory.NewPurchaseOrderRepository(store),
		shipments:  memory.NewShipmentRepository(store),
		boms:       memory.NewBOMRepository(store),
		workOrders: memory.NewWorkOrderRepository(store),
		rfqs:       memory.NewRFQRepository(store),
		tx:         memory.NewTxRunner(store),
		close:      func() {},
	}, nil
}
