package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo existencias por ubicación sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, company_id, component_number, location, current_qty, daily_demand, lead_time_days, safety_stock, updated_at`

// Create persiste una existencia. (company_id, component_number, location) es único.
func (r *InventoryRepo) Create(ctx context.Context, it *entity.WarehouseInventory) error {
	query := `INSERT INTO warehouse_inventory (` + inventoryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.CompanyID, it.ComponentNumber, it.Location, it.CurrentQty,
		it.DailyDemand, it.LeadTimeDays, it.SafetyStock, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene una existencia por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.WarehouseInventory, error) {
	return r.getOne(ctx, `SELECT `+inventoryColumns+` FROM warehouse_inventory WHERE id = $1`, id)
}

// GetForUpdate obtiene la existencia con SELECT ... FOR UPDATE. Solo tiene efecto dentro de una tx.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, companyID, componentNumber, location string) (*entity.WarehouseInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM warehouse_inventory
		WHERE company_id = $1 AND component_number = $2 AND location = $3
		FOR UPDATE`
	return r.getOne(ctx, query, companyID, componentNumber, location)
}

// Update persiste cantidad y parámetros de reorden.
func (r *InventoryRepo) Update(ctx context.Context, it *entity.WarehouseInventory) error {
	query := `
		UPDATE warehouse_inventory
		   SET current_qty = $2, daily_demand = $3, lead_time_days = $4, safety_stock = $5, updated_at = $6
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, it.ID, it.CurrentQty, it.DailyDemand, it.LeadTimeDays, it.SafetyStock, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany existencias de la empresa ordenadas por componente y ubicación.
func (r *InventoryRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.WarehouseInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM warehouse_inventory WHERE company_id = $1 ORDER BY component_number, location`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var list []*entity.WarehouseInventory
	for rows.Next() {
		it, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.WarehouseInventory, error) {
	it, err := scanInventory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return it, nil
}

func scanInventory(row pgx.Row) (*entity.WarehouseInventory, error) {
	var it entity.WarehouseInventory
	err := row.Scan(&it.ID, &it.CompanyID, &it.ComponentNumber, &it.Location, &it.CurrentQty,
		&it.DailyDemand, &it.LeadTimeDays, &it.SafetyStock, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
