package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/internal/application/inventory"
	"github.com/jhoicas/supplychain-api/internal/application/ports"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/memory"
)

const companyID = "company-1"

var fallback = decimal.NewFromInt(10)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakePDF struct {
	lines []ports.PurchaseOrderLine
}

func (f *fakePDF) GeneratePurchaseOrderPDF(_ context.Context, _ *entity.PurchaseOrder, _ *entity.Company, _ *entity.Supplier, lines []ports.PurchaseOrderLine) ([]byte, error) {
	f.lines = lines
	return []byte("%PDF-1.4"), nil
}

type fakeRFQDoc struct {
	supplier *entity.Supplier
}

func (f *fakeRFQDoc) BuildRFQDocument(_ context.Context, rfq *entity.RequestForQuotation, _ *entity.Company, supplier *entity.Supplier, _ map[string]string) (*ports.RFQDocument, error) {
	f.supplier = supplier
	return &ports.RFQDocument{XML: []byte("<RequestForQuotation/>"), Digest: "abc"}, nil
}

// env repositorios en memoria con una empresa, un proveedor y dos componentes.
type env struct {
	store      *memory.Store
	supplierID string
	pdf        *fakePDF
	rfqDoc     *fakeRFQDoc
	views      *inventory.StockViews

	companies  *memory.CompanyRepository
	suppliers  *memory.SupplierRepository
	components *memory.ComponentRepository
	inventory  *memory.InventoryRepository
	orders     *memory.PurchaseOrderRepository
	shipments  *memory.ShipmentRepository
	boms       *memory.BOMRepository
	workOrders *memory.WorkOrderRepository
	rfqs       *memory.RFQRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	e := &env{
		store:      s,
		pdf:        &fakePDF{},
		rfqDoc:     &fakeRFQDoc{},
		companies:  memory.NewCompanyRepository(s),
		suppliers:  memory.NewSupplierRepository(s),
		components: memory.NewComponentRepository(s),
		inventory:  memory.NewInventoryRepository(s),
		orders:     memory.NewPurchaseOrderRepository(s),
		shipments:  memory.NewShipmentRepository(s),
		boms:       memory.NewBOMRepository(s),
		workOrders: memory.NewWorkOrderRepository(s),
		rfqs:       memory.NewRFQRepository(s),
	}
	now := time.Now()
	require.NoError(t, e.companies.Create(ctx, &entity.Company{ID: companyID, Name: "Acme", TaxID: "900", Status: "active", CreatedAt: now, UpdatedAt: now}))
	e.supplierID = "supplier-1"
	require.NoError(t, e.suppliers.Create(ctx, &entity.Supplier{ID: e.supplierID, CompanyID: companyID, Name: "Northwind", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, e.components.Create(ctx, &entity.Component{ID: "cmp-a", CompanyID: companyID, ComponentNumber: "A", Description: "Resistor", UnitPrice: d("2")}))
	require.NoError(t, e.components.Create(ctx, &entity.Component{ID: "cmp-b", CompanyID: companyID, ComponentNumber: "B", Description: "Capacitor", UnitPrice: d("5")}))
	return e
}

func (e *env) purchaseOrders() *usecase.PurchaseOrderUseCase {
	return usecase.NewPurchaseOrderUseCase(e.orders, e.suppliers, e.components, e.companies, memory.NewTxRunner(e.store), e.pdf, e.views)
}

func (e *env) bomUseCase() *usecase.BOMUseCase {
	return usecase.NewBOMUseCase(e.boms, e.components, fallback)
}

func (e *env) workOrderUseCase() *usecase.WorkOrderUseCase {
	return usecase.NewWorkOrderUseCase(e.workOrders, e.boms, e.inventory, e.components, fallback)
}

func (e *env) rfqUseCase() *usecase.RFQUseCase {
	return usecase.NewRFQUseCase(e.rfqs, e.suppliers, e.components, e.companies, e.rfqDoc)
}

func newShipmentUseCase(e *env) *usecase.ShipmentUseCase {
	return usecase.NewShipmentUseCase(e.shipments, e.orders)
}
