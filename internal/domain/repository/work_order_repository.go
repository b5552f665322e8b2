package repository

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// WorkOrderRepository define el puerto de persistencia para órdenes de trabajo.
type WorkOrderRepository interface {
	Create(ctx context.Context, wo *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.WorkOrder, error)
	Update(ctx context.Context, wo *entity.WorkOrder) error
}
