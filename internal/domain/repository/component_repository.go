package repository

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// ComponentRepository define el puerto de persistencia para el catálogo de componentes.
type ComponentRepository interface {
	Create(ctx context.Context, component *entity.Component) error
	GetByID(ctx context.Context, id string) (*entity.Component, error)
	GetByNumber(ctx context.Context, companyID, componentNumber string) (*entity.Component, error)
	Update(ctx context.Context, component *entity.Component) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Component, error)
	Delete(ctx context.Context, id string) error
}
