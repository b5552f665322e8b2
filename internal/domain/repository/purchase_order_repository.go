package repository

import (
	"context"
	"time"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra (con sus ítems).
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate lee la orden bloqueándola hasta el fin de la transacción en curso.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetByNumber(ctx context.Context, companyID, poNumber string) (*entity.PurchaseOrder, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.PurchaseOrder, error)
	// TransitionStatus cambia el estado solo si sigue siendo from.
	// domain.ErrInvalidTransition si otro proceso ya lo cambió; domain.ErrNotFound si no existe.
	TransitionStatus(ctx context.Context, id, from, to string, updatedAt time.Time) error
}
