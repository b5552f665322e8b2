package repository

import (
	"context"
	"time"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// BOMRepository define el puerto de persistencia para listas de materiales (con sus ítems).
type BOMRepository interface {
	Create(ctx context.Context, bom *entity.BillOfMaterial) error
	GetByID(ctx context.Context, id string) (*entity.BillOfMaterial, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.BillOfMaterial, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
}
