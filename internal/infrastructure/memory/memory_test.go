package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/memory"
)

func TestPurchaseOrderRepository_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPurchaseOrderRepository(memory.NewStore())
	po := &entity.PurchaseOrder{
		ID: "po-1", CompanyID: "c1", PONumber: "PO-1", Status: entity.POStatusDraft,
		Items: []entity.PurchaseOrderItem{{ComponentNumber: "A", Quantity: decimal.NewFromInt(1)}},
	}
	require.NoError(t, repo.Create(ctx, po))

	got, err := repo.GetByID(ctx, "po-1")
	require.NoError(t, err)
	got.Status = entity.POStatusCancelled
	got.Items[0].ComponentNumber = "B"

	again, err := repo.GetByID(ctx, "po-1")
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusDraft, again.Status)
	assert.Equal(t, "A", again.Items[0].ComponentNumber)
}

func TestPurchaseOrderRepository_NumeroDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPurchaseOrderRepository(memory.NewStore())
	require.NoError(t, repo.Create(ctx, &entity.PurchaseOrder{ID: "1", CompanyID: "c1", PONumber: "PO-1"}))

	err := repo.Create(ctx, &entity.PurchaseOrder{ID: "2", CompanyID: "c1", PONumber: "PO-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Otra empresa puede usar el mismo número.
	assert.NoError(t, repo.Create(ctx, &entity.PurchaseOrder{ID: "3", CompanyID: "c2", PONumber: "PO-1"}))
}

func TestRepositorios_NoExiste(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	po, err := memory.NewPurchaseOrderRepository(s).GetByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, po)

	err = memory.NewPurchaseOrderRepository(s).TransitionStatus(ctx, "nope", entity.POStatusDraft, entity.POStatusSubmitted, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = memory.NewComponentRepository(s).Delete(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseOrder_TransitionStatusExigeEstadoActual(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	repo := memory.NewPurchaseOrderRepository(s)
	require.NoError(t, repo.Create(ctx, &entity.PurchaseOrder{ID: "po-1", CompanyID: "c1", PONumber: "PO-1", Status: entity.POStatusShipped}))

	require.NoError(t, repo.TransitionStatus(ctx, "po-1", entity.POStatusShipped, entity.POStatusReceived, time.Now()))

	// Segundo intento con la foto vieja: la fila ya no está en shipped.
	err := repo.TransitionStatus(ctx, "po-1", entity.POStatusShipped, entity.POStatusReceived, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := repo.GetForUpdate(ctx, "po-1")
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, got.Status)
}

func TestTxRunner_RevierteSiFalla(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	inv := memory.NewInventoryRepository(s)
	require.NoError(t, inv.Create(ctx, &entity.WarehouseInventory{
		ID: "i1", CompanyID: "c1", ComponentNumber: "A", Location: "L1", CurrentQty: decimal.NewFromInt(10),
	}))
	boom := errors.New("boom")

	err := memory.NewTxRunner(s).Run(ctx, func(_ repository.PurchaseOrderRepository, invRepo repository.InventoryRepository) error {
		item, err := invRepo.GetForUpdate(ctx, "c1", "A", "L1")
		require.NoError(t, err)
		item.CurrentQty = decimal.NewFromInt(99)
		require.NoError(t, invRepo.Update(ctx, item))
		require.NoError(t, invRepo.Create(ctx, &entity.WarehouseInventory{ID: "i2", CompanyID: "c1", ComponentNumber: "B", Location: "L1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	item, err := inv.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.True(t, item.CurrentQty.Equal(decimal.NewFromInt(10)))
	missing, err := inv.GetByID(ctx, "i2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTxRunner_ConfirmaSiOK(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	err := memory.NewTxRunner(s).Run(ctx, func(_ repository.PurchaseOrderRepository, invRepo repository.InventoryRepository) error {
		return invRepo.Create(ctx, &entity.WarehouseInventory{ID: "i1", CompanyID: "c1", ComponentNumber: "A", Location: "L1"})
	})
	require.NoError(t, err)

	list, err := memory.NewInventoryRepository(s).ListByCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	tenant, err := memory.SeedDemo(ctx, s, "demo-pass")
	require.NoError(t, err)
	require.NotEmpty(t, tenant.CompanyID)
	assert.Equal(t, "admin@acme.example", tenant.Users[entity.RoleAdmin])

	orders, err := memory.NewPurchaseOrderRepository(s).ListByCompany(ctx, tenant.CompanyID)
	require.NoError(t, err)
	assert.Len(t, orders, 5)
	assert.Equal(t, "PO-1001", orders[0].PONumber, "orden de inserción")
	assert.True(t, orders[0].TotalAmount.Equal(decimal.RequireFromString("250")))

	user, err := memory.NewUserRepository(s).FindByEmail(ctx, "BUYER@acme.example")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleBuyer, user.Role)
}
