package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/supplychain-api/internal/application/inventory"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	invRepo repository.InventoryRepository,
) error) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(NewPurchaseOrderRepository(tx), NewInventoryRepository(tx))
	})
}
