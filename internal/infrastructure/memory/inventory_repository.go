package memory

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepository)(nil)

// InventoryRepository implementación en memoria de existencias por ubicación.
type InventoryRepository struct{ s *Store }

// NewInventoryRepository construye el repositorio sobre el store.
func NewInventoryRepository(s *Store) *InventoryRepository { return &InventoryRepository{s: s} }

// Create inserta una existencia. (empresa, componente, ubicación) es único.
func (r *InventoryRepository) Create(_ context.Context, it *entity.WarehouseInventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.inventory.has(it.ID) || r.s.inventory.first(sameSlot(it.CompanyID, it.ComponentNumber, it.Location)) != nil {
		return domain.ErrDuplicate
	}
	r.s.inventory.put(it.ID, it)
	return nil
}

func (r *InventoryRepository) GetByID(_ context.Context, id string) (*entity.WarehouseInventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.inventory.get(id), nil
}

// GetForUpdate en memoria no bloquea filas: la exclusión la da TxRunner.
func (r *InventoryRepository) GetForUpdate(_ context.Context, companyID, componentNumber, location string) (*entity.WarehouseInventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.inventory.first(sameSlot(companyID, componentNumber, location)), nil
}

func (r *InventoryRepository) Update(_ context.Context, it *entity.WarehouseInventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.inventory.has(it.ID) {
		return domain.ErrNotFound
	}
	r.s.inventory.put(it.ID, it)
	return nil
}

func (r *InventoryRepository) ListByCompany(_ context.Context, companyID string) ([]*entity.WarehouseInventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.inventory.find(func(x *entity.WarehouseInventory) bool { return x.CompanyID == companyID }), nil
}

func sameSlot(companyID, componentNumber, location string) func(*entity.WarehouseInventory) bool {
	return func(x *entity.WarehouseInventory) bool {
		return x.CompanyID == companyID && x.ComponentNumber == componentNumber && x.Location == location
	}
}
