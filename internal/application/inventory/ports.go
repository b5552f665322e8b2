package inventory

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad entre el cambio de estado de una orden y las existencias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		poRepo repository.PurchaseOrderRepository,
		invRepo repository.InventoryRepository,
	) error) error
}
