package memory

import (
	"context"

	"github.com/jhoicas/supplychain-api/internal/application/inventory"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y revierte órdenes y existencias si fn falla.
type TxRunner struct{ s *Store }

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn con repositorios del mismo store. Si fn devuelve error se restaura
// la foto de órdenes de compra y existencias tomada al inicio.
func (r *TxRunner) Run(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	invRepo repository.InventoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.RLock()
	orders := r.s.purchaseOrders.snapshot()
	stock := r.s.inventory.snapshot()
	r.s.mu.RUnlock()

	if err := fn(NewPurchaseOrderRepository(r.s), NewInventoryRepository(r.s)); err != nil {
		r.s.mu.Lock()
		r.s.purchaseOrders.restore(orders)
		r.s.inventory.restore(stock)
		r.s.mu.Unlock()
		return err
	}
	return nil
}
