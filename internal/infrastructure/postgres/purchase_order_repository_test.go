package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/postgres"
	"github.com/jhoicas/supplychain-api/pkg/config"
)

// Requiere una base desechable: SUPPLYCHAIN_TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
const testDatabaseEnv = "SUPPLYCHAIN_TEST_DATABASE_URL"

func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv(testDatabaseEnv)
	if url == "" {
		t.Skipf("%s no definido", testDatabaseEnv)
	}
	ctx := context.Background()

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, postgres.Migrate(ctx, db, "up"))

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPurchaseOrder_ReceiveConcurrenteEnPostgres(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	now := time.Now()

	companyID := uuid.NewString()
	require.NoError(t, postgres.NewCompanyRepository(pool).Create(ctx, &entity.Company{
		ID: companyID, Name: "Acme QA", TaxID: "QA-" + companyID[:8], Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), "DELETE FROM companies WHERE id = $1", companyID) })

	orders := postgres.NewPurchaseOrderRepository(pool)
	po := &entity.PurchaseOrder{
		ID: uuid.NewString(), CompanyID: companyID, PONumber: "PO-RACE", SupplierID: uuid.NewString(),
		Status: entity.POStatusShipped, Currency: "USD", OrderDate: now,
		Items:     []entity.PurchaseOrderItem{{ComponentNumber: "A", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(2)}},
		CreatedAt: now, UpdatedAt: now,
	}
	po.ComputeTotal()
	require.NoError(t, orders.Create(ctx, po))

	uc := usecase.NewPurchaseOrderUseCase(
		orders, postgres.NewSupplierRepository(pool), postgres.NewComponentRepository(pool),
		postgres.NewCompanyRepository(pool), postgres.NewTxRunner(pool), nil, nil,
	)

	const attempts = 6
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = uc.Receive(ctx, companyID, po.ID, "MAIN")
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "error inesperado: %v", err)
	}
	assert.Equal(t, 1, ok, "solo una recepción debe confirmarse")

	stock, err := postgres.NewInventoryRepository(pool).GetForUpdate(ctx, companyID, "A", "MAIN")
	require.NoError(t, err)
	require.NotNil(t, stock)
	assert.True(t, stock.CurrentQty.Equal(decimal.NewFromInt(10)), stock.CurrentQty.String())

	err = orders.TransitionStatus(ctx, po.ID, entity.POStatusShipped, entity.POStatusReceived, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	err = orders.TransitionStatus(ctx, uuid.NewString(), entity.POStatusShipped, entity.POStatusReceived, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
