package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.RFQRepository = (*RFQRepo)(nil)

// RFQRepo solicitudes de cotización y sus ítems (tabla rfq_items) sobre PostgreSQL.
type RFQRepo struct {
	q Querier
}

// NewRFQRepository construye el adaptador de persistencia para RFQs.
func NewRFQRepository(q Querier) *RFQRepo {
	return &RFQRepo{q: q}
}

const rfqColumns = `id, company_id, rfq_number, title, supplier_id, status, issue_date, due_date, quoted_amount, created_at, updated_at`

// Create inserta la RFQ y sus ítems en una transacción.
func (r *RFQRepo) Create(ctx context.Context, rfq *entity.RequestForQuotation) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		query := `INSERT INTO rfqs (` + rfqColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		_, err := tx.Exec(ctx, query,
			rfq.ID, rfq.CompanyID, rfq.RFQNumber, rfq.Title, rfq.SupplierID, rfq.Status,
			rfq.IssueDate, rfq.DueDate, rfq.QuotedAmount, rfq.CreatedAt, rfq.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert rfq: %w", err)
		}
		if len(rfq.Items) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for i, it := range rfq.Items {
			batch.Queue(`
				INSERT INTO rfq_items (rfq_id, line_no, component_number, quantity, target_price)
				VALUES ($1, $2, $3, $4, $5)`,
				rfq.ID, i+1, it.ComponentNumber, it.Quantity, it.TargetPrice)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert rfq items: %w", err)
		}
		return nil
	})
}

// GetByID obtiene una RFQ con sus ítems.
func (r *RFQRepo) GetByID(ctx context.Context, id string) (*entity.RequestForQuotation, error) {
	rfq, err := scanRFQ(r.q.QueryRow(ctx, `SELECT `+rfqColumns+` FROM rfqs WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rfq: %w", err)
	}
	items, err := r.items(ctx, []string{rfq.ID})
	if err != nil {
		return nil, err
	}
	rfq.Items = items[rfq.ID]
	return rfq, nil
}

// ListByCompany RFQs de la empresa (más recientes primero) con sus ítems.
func (r *RFQRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.RequestForQuotation, error) {
	rows, err := r.q.Query(ctx, `SELECT `+rfqColumns+` FROM rfqs WHERE company_id = $1 ORDER BY issue_date DESC, rfq_number`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list rfqs: %w", err)
	}
	var (
		list []*entity.RequestForQuotation
		ids  []string
	)
	for rows.Next() {
		rfq, err := scanRFQ(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan rfq: %w", err)
		}
		list = append(list, rfq)
		ids = append(ids, rfq.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rfqs: %w", err)
	}
	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, rfq := range list {
		rfq.Items = items[rfq.ID]
	}
	return list, nil
}

// Update persiste estado y monto cotizado; los ítems no cambian.
func (r *RFQRepo) Update(ctx context.Context, rfq *entity.RequestForQuotation) error {
	cmd, err := r.q.Exec(ctx, `UPDATE rfqs SET status = $2, quoted_amount = $3, updated_at = $4 WHERE id = $1`,
		rfq.ID, rfq.Status, rfq.QuotedAmount, rfq.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update rfq: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RFQRepo) items(ctx context.Context, ids []string) (map[string][]entity.RFQItem, error) {
	out := make(map[string][]entity.RFQItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT rfq_id, component_number, quantity, target_price
		  FROM rfq_items
		 WHERE rfq_id = ANY($1)
		 ORDER BY rfq_id, line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("list rfq items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			rfqID string
			it    entity.RFQItem
		)
		if err := rows.Scan(&rfqID, &it.ComponentNumber, &it.Quantity, &it.TargetPrice); err != nil {
			return nil, fmt.Errorf("scan rfq item: %w", err)
		}
		out[rfqID] = append(out[rfqID], it)
	}
	return out, rows.Err()
}

func scanRFQ(row pgx.Row) (*entity.RequestForQuotation, error) {
	var rfq entity.RequestForQuotation
	err := row.Scan(&rfq.ID, &rfq.CompanyID, &rfq.RFQNumber, &rfq.Title, &rfq.SupplierID, &rfq.Status,
		&rfq.IssueDate, &rfq.DueDate, &rfq.QuotedAmount, &rfq.CreatedAt, &rfq.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rfq, nil
}
