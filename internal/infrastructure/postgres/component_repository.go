package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

// ComponentRepo catálogo de componentes sobre PostgreSQL (usable con pool o tx).
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construye el adaptador de persistencia del catálogo.
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

const componentColumns = `id, company_id, component_number, description, unit_price, unit_measure, supplier_id, created_at, updated_at`

// Create persiste un componente. (company_id, component_number) es único.
func (r *ComponentRepo) Create(ctx context.Context, c *entity.Component) error {
	query := `INSERT INTO components (` + componentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.ComponentNumber, c.Description, c.UnitPrice, c.UnitMeasure,
		nullIfEmpty(c.SupplierID), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

// GetByID obtiene un componente por ID.
func (r *ComponentRepo) GetByID(ctx context.Context, id string) (*entity.Component, error) {
	return r.getOne(ctx, `SELECT `+componentColumns+` FROM components WHERE id = $1`, id)
}

// GetByNumber obtiene un componente por empresa y número de componente.
func (r *ComponentRepo) GetByNumber(ctx context.Context, companyID, componentNumber string) (*entity.Component, error) {
	return r.getOne(ctx, `SELECT `+componentColumns+` FROM components WHERE company_id = $1 AND component_number = $2`, companyID, componentNumber)
}

// Update actualiza descripción, precio, unidad y proveedor.
func (r *ComponentRepo) Update(ctx context.Context, c *entity.Component) error {
	query := `
		UPDATE components SET description = $2, unit_price = $3, unit_measure = $4, supplier_id = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Description, c.UnitPrice, c.UnitMeasure, nullIfEmpty(c.SupplierID), c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany catálogo de la empresa ordenado por número de componente.
func (r *ComponentRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Component, error) {
	rows, err := r.q.Query(ctx, `SELECT `+componentColumns+` FROM components WHERE company_id = $1 ORDER BY component_number`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()

	var list []*entity.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina un componente.
func (r *ComponentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ComponentRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Component, error) {
	c, err := scanComponent(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return c, nil
}

func scanComponent(row pgx.Row) (*entity.Component, error) {
	var (
		c          entity.Component
		supplierID *string
	)
	err := row.Scan(&c.ID, &c.CompanyID, &c.ComponentNumber, &c.Description, &c.UnitPrice, &c.UnitMeasure,
		&supplierID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.SupplierID = derefString(supplierID)
	return &c, nil
}
