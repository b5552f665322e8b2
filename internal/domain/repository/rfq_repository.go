package repository

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// RFQRepository define el puerto de persistencia para solicitudes de cotización (con sus ítems).
type RFQRepository interface {
	Create(ctx context.Context, rfq *entity.RequestForQuotation) error
	GetByID(ctx context.Context, id string) (*entity.RequestForQuotation, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.RequestForQuotation, error)
	// Update persiste Status, QuotedAmount y UpdatedAt (los ítems son inmutables).
	Update(ctx context.Context, rfq *entity.RequestForQuotation) error
}
