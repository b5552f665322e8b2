package repository

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para existencias por ubicación.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.WarehouseInventory) error
	GetByID(ctx context.Context, id string) (*entity.WarehouseInventory, error)
	// GetForUpdate bloquea la fila de (empresa, componente, ubicación) dentro de una tx.
	// Devuelve (nil, nil) si aún no existe.
	GetForUpdate(ctx context.Context, companyID, componentNumber, location string) (*entity.WarehouseInventory, error)
	Update(ctx context.Context, item *entity.WarehouseInventory) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.WarehouseInventory, error)
}
