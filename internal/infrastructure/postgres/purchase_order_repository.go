package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra y sus ítems (tabla purchase_order_items) sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, company_id, po_number, supplier_id, status, currency, order_date, expected_date, total_amount, created_at, updated_at`

// Create inserta la cabecera y los ítems en una sola transacción.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		query := `INSERT INTO purchase_orders (` + poColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		_, err := tx.Exec(ctx, query,
			po.ID, po.CompanyID, po.PONumber, po.SupplierID, po.Status, po.Currency,
			po.OrderDate, po.ExpectedDate, po.TotalAmount, po.CreatedAt, po.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert purchase order: %w", err)
		}
		if len(po.Items) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for i, it := range po.Items {
			batch.Queue(`
				INSERT INTO purchase_order_items (purchase_order_id, line_no, component_number, quantity, unit_price)
				VALUES ($1, $2, $3, $4, $5)`,
				po.ID, i+1, it.ComponentNumber, it.Quantity, it.UnitPrice)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert purchase order items: %w", err)
		}
		return nil
	})
}

// GetByID obtiene una orden con sus ítems.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate obtiene la orden con SELECT ... FOR UPDATE. Solo tiene efecto dentro de una tx:
// una segunda recepción concurrente espera aquí y luego ve el estado ya confirmado.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

// GetByNumber obtiene una orden por empresa y número.
func (r *PurchaseOrderRepo) GetByNumber(ctx context.Context, companyID, poNumber string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE company_id = $1 AND po_number = $2`, companyID, poNumber)
}

// ListByCompany órdenes de la empresa (más recientes primero) con sus ítems.
func (r *PurchaseOrderRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE company_id = $1 ORDER BY order_date DESC, po_number`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var (
		list []*entity.PurchaseOrder
		ids  []string
	)
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
		ids = append(ids, po.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, po := range list {
		po.Items = items[po.ID]
	}
	return list, nil
}

// TransitionStatus cambia el estado solo si la fila sigue en from (compare-and-set).
func (r *PurchaseOrderRepo) TransitionStatus(ctx context.Context, id, from, to string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, from, to, updatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	var current string
	err = r.q.QueryRow(ctx, `SELECT status FROM purchase_orders WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get purchase order status: %w", err)
	}
	return fmt.Errorf("%w: la orden ya está en %s", domain.ErrInvalidTransition, current)
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query string, args ...any) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.items(ctx, []string{po.ID})
	if err != nil {
		return nil, err
	}
	po.Items = items[po.ID]
	return po, nil
}

// items carga los ítems de varias órdenes en una consulta, en orden de línea.
func (r *PurchaseOrderRepo) items(ctx context.Context, ids []string) (map[string][]entity.PurchaseOrderItem, error) {
	out := make(map[string][]entity.PurchaseOrderItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT purchase_order_id, component_number, quantity, unit_price
		  FROM purchase_order_items
		 WHERE purchase_order_id = ANY($1)
		 ORDER BY purchase_order_id, line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			poID string
			it   entity.PurchaseOrderItem
		)
		if err := rows.Scan(&poID, &it.ComponentNumber, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		out[poID] = append(out[poID], it)
	}
	return out, rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.CompanyID, &po.PONumber, &po.SupplierID, &po.Status, &po.Currency,
		&po.OrderDate, &po.ExpectedDate, &po.TotalAmount, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &po, nil
}
