package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo envíos sobre PostgreSQL.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador de persistencia para envíos.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentColumns = `id, company_id, purchase_order_id, carrier, tracking_number, status, shipped_at, estimated_arrival, delivered_at, created_at, updated_at`

// Create persiste un envío.
func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	query := `INSERT INTO shipments (` + shipmentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.PurchaseOrderID, s.Carrier, s.TrackingNumber, s.Status,
		s.ShippedAt, s.EstimatedArrival, s.DeliveredAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByID obtiene un envío por ID.
func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	s, err := scanShipment(r.q.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return s, nil
}

// ListByCompany envíos de la empresa, más recientes primero.
func (r *ShipmentRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Shipment, error) {
	return r.list(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE company_id = $1 ORDER BY created_at DESC, id`, companyID)
}

// ListByPurchaseOrder envíos de una orden de compra.
func (r *ShipmentRepo) ListByPurchaseOrder(ctx context.Context, purchaseOrderID string) ([]*entity.Shipment, error) {
	return r.list(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE purchase_order_id = $1 ORDER BY created_at, id`, purchaseOrderID)
}

// Update persiste estado, transportista y fechas.
func (r *ShipmentRepo) Update(ctx context.Context, s *entity.Shipment) error {
	query := `
		UPDATE shipments
		   SET carrier = $2, tracking_number = $3, status = $4, shipped_at = $5,
		       estimated_arrival = $6, delivered_at = $7, updated_at = $8
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, s.ID, s.Carrier, s.TrackingNumber, s.Status, s.ShippedAt,
		s.EstimatedArrival, s.DeliveredAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ShipmentRepo) list(ctx context.Context, query string, arg string) ([]*entity.Shipment, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	err := row.Scan(&s.ID, &s.CompanyID, &s.PurchaseOrderID, &s.Carrier, &s.TrackingNumber, &s.Status,
		&s.ShippedAt, &s.EstimatedArrival, &s.DeliveredAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
