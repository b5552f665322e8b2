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

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo listas de materiales y sus ítems (tabla bom_items) sobre PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador de persistencia para BOMs.
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

const bomColumns = `id, company_id, product_number, name, version, status, created_at, updated_at`

// Create inserta la BOM y sus ítems en una transacción.
func (r *BOMRepo) Create(ctx context.Context, bom *entity.BillOfMaterial) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		query := `INSERT INTO bills_of_material (` + bomColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err := tx.Exec(ctx, query, bom.ID, bom.CompanyID, bom.ProductNumber, bom.Name, bom.Version,
			bom.Status, bom.CreatedAt, bom.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert bom: %w", err)
		}
		if len(bom.Items) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for i, it := range bom.Items {
			batch.Queue(`INSERT INTO bom_items (bom_id, line_no, component_number, quantity) VALUES ($1, $2, $3, $4)`,
				bom.ID, i+1, it.ComponentNumber, it.Quantity)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert bom items: %w", err)
		}
		return nil
	})
}

// GetByID obtiene una BOM con sus ítems.
func (r *BOMRepo) GetByID(ctx context.Context, id string) (*entity.BillOfMaterial, error) {
	bom, err := scanBOM(r.q.QueryRow(ctx, `SELECT `+bomColumns+` FROM bills_of_material WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom: %w", err)
	}
	items, err := r.items(ctx, []string{bom.ID})
	if err != nil {
		return nil, err
	}
	bom.Items = items[bom.ID]
	return bom, nil
}

// ListByCompany BOMs de la empresa con sus ítems.
func (r *BOMRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.BillOfMaterial, error) {
	rows, err := r.q.Query(ctx, `SELECT `+bomColumns+` FROM bills_of_material WHERE company_id = $1 ORDER BY product_number, version`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	var (
		list []*entity.BillOfMaterial
		ids  []string
	)
	for rows.Next() {
		bom, err := scanBOM(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan bom: %w", err)
		}
		list = append(list, bom)
		ids = append(ids, bom.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, bom := range list {
		bom.Items = items[bom.ID]
	}
	return list, nil
}

// UpdateStatus cambia el estado de la BOM.
func (r *BOMRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE bills_of_material SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update bom status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BOMRepo) items(ctx context.Context, ids []string) (map[string][]entity.BomItem, error) {
	out := make(map[string][]entity.BomItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT bom_id, component_number, quantity
		  FROM bom_items
		 WHERE bom_id = ANY($1)
		 ORDER BY bom_id, line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("list bom items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			bomID string
			it    entity.BomItem
		)
		if err := rows.Scan(&bomID, &it.ComponentNumber, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan bom item: %w", err)
		}
		out[bomID] = append(out[bomID], it)
	}
	return out, rows.Err()
}

func scanBOM(row pgx.Row) (*entity.BillOfMaterial, error) {
	var b entity.BillOfMaterial
	if err := row.Scan(&b.ID, &b.CompanyID, &b.ProductNumber, &b.Name, &b.Version, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
