package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo órdenes de trabajo sobre PostgreSQL.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador de persistencia para órdenes de trabajo.
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const woColumns = `id, company_id, wo_number, bom_id, quantity, status, priority, start_date, due_date, completed_at, created_at, updated_at`

// Create persiste una orden de trabajo. (company_id, wo_number) es único.
func (r *WorkOrderRepo) Create(ctx context.Context, wo *entity.WorkOrder) error {
	query := `INSERT INTO work_orders (` + woColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		wo.ID, wo.CompanyID, wo.WONumber, wo.BomID, wo.Quantity, wo.Status, wo.Priority,
		wo.StartDate, wo.DueDate, wo.CompletedAt, wo.CreatedAt, wo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de trabajo por ID.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	wo, err := scanWorkOrder(r.q.QueryRow(ctx, `SELECT `+woColumns+` FROM work_orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return wo, nil
}

// ListByCompany órdenes de trabajo de la empresa, más recientes primero.
func (r *WorkOrderRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.WorkOrder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+woColumns+` FROM work_orders WHERE company_id = $1 ORDER BY created_at DESC, wo_number`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		list = append(list, wo)
	}
	return list, rows.Err()
}

// Update persiste estado, prioridad y fechas.
func (r *WorkOrderRepo) Update(ctx context.Context, wo *entity.WorkOrder) error {
	query := `
		UPDATE work_orders
		   SET status = $2, priority = $3, start_date = $4, due_date = $5, completed_at = $6, updated_at = $7
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, wo.ID, wo.Status, wo.Priority, wo.StartDate, wo.DueDate, wo.CompletedAt, wo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanWorkOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var wo entity.WorkOrder
	err := row.Scan(&wo.ID, &wo.CompanyID, &wo.WONumber, &wo.BomID, &wo.Quantity, &wo.Status, &wo.Priority,
		&wo.StartDate, &wo.DueDate, &wo.CompletedAt, &wo.CreatedAt, &wo.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &wo, nil
}
