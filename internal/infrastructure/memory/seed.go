package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// DemoTenant datos de acceso de la empresa sembrada por SeedDemo.
type DemoTenant struct {
	CompanyID string
	Users     map[string]string // rol → email
}

// SeedDemo carga una empresa de demostración con catálogo, existencias, compras,
// envíos, BOMs, órdenes de trabajo y RFQs. Todos los usuarios comparten password.
func SeedDemo(ctx context.Context, s *Store, password string) (*DemoTenant, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash password: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	day := func(n int) *time.Time {
		t := now.AddDate(0, 0, n)
		return &t
	}
	d := decimal.RequireFromString

	company := &entity.Company{
		ID: uuid.NewString(), Name: "Acme Manufacturing", TaxID: "900123456-7",
		Email: "ops@acme.example", Status: "active", CreatedAt: now, UpdatedAt: now,
	}
	if err := NewCompanyRepository(s).Create(ctx, company); err != nil {
		return nil, fmt.Errorf("seed: company: %w", err)
	}
	tenant := &DemoTenant{CompanyID: company.ID, Users: map[string]string{}}

	users := NewUserRepository(s)
	for _, role := range []string{entity.RoleAdmin, entity.RoleBuyer, entity.RolePlanner, entity.RoleViewer} {
		email := role + "@acme.example"
		u := &entity.User{
			ID: uuid.NewString(), CompanyID: company.ID, Email: email, PasswordHash: string(hash),
			Name: "Demo " + role, Role: role, Status: "active", CreatedAt: now, UpdatedAt: now,
		}
		if err := users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("seed: user %s: %w", role, err)
		}
		tenant.Users[role] = email
	}

	supplierRepo := NewSupplierRepository(s)
	suppliers := []*entity.Supplier{
		{Name: "Shenzhen Components Ltd", ContactEmail: "sales@szcomp.example", Phone: "+86 755 0000", Country: "CN"},
		{Name: "Northwind Plastics", ContactEmail: "orders@northwind.example", Phone: "+1 555 0100", Country: "US"},
		{Name: "Bavaria PCB GmbH", ContactEmail: "info@bavariapcb.example", Phone: "+49 89 0000", Country: "DE"},
	}
	for _, sup := range suppliers {
		sup.ID, sup.CompanyID, sup.CreatedAt, sup.UpdatedAt = uuid.NewString(), company.ID, now, now
		if err := supplierRepo.Create(ctx, sup); err != nil {
			return nil, fmt.Errorf("seed: supplier: %w", err)
		}
	}

	componentRepo := NewComponentRepository(s)
	components := []*entity.Component{
		{ComponentNumber: "CMP-1001", Description: "Resistor 10k 0603", UnitPrice: d("0.05"), SupplierID: suppliers[0].ID},
		{ComponentNumber: "CMP-1002", Description: "Capacitor 100uF", UnitPrice: d("0.20"), SupplierID: suppliers[0].ID},
		{ComponentNumber: "CMP-2001", Description: "Microcontroller STM32F4", UnitPrice: d("4.50"), SupplierID: suppliers[0].ID},
		{ComponentNumber: "CMP-3001", Description: "PCB 4 capas 100x80", UnitPrice: d("12.00"), SupplierID: suppliers[2].ID},
		{ComponentNumber: "CMP-4001", Description: "Carcasa ABS", UnitPrice: d("3.75"), SupplierID: suppliers[1].ID},
	}
	for _, c := range components {
		c.ID, c.CompanyID, c.UnitMeasure, c.CreatedAt, c.UpdatedAt = uuid.NewString(), company.ID, "EA", now, now
		if err := componentRepo.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("seed: component: %w", err)
		}
	}

	invRepo := NewInventoryRepository(s)
	stock := []*entity.WarehouseInventory{
		{ComponentNumber: "CMP-1001", Location: "A-01", CurrentQty: d("5000"), DailyDemand: d("200"), LeadTimeDays: 7, SafetyStock: d("500")},
		{ComponentNumber: "CMP-1002", Location: "A-02", CurrentQty: d("800"), DailyDemand: d("100"), LeadTimeDays: 7, SafetyStock: d("300")},
		{ComponentNumber: "CMP-2001", Location: "B-01", CurrentQty: d("40"), DailyDemand: d("10"), LeadTimeDays: 5, SafetyStock: d("20")},
		{ComponentNumber: "CMP-3001", Location: "B-02", CurrentQty: d("150"), DailyDemand: d("10"), LeadTimeDays: 10, SafetyStock: d("25")},
		{ComponentNumber: "CMP-4001", Location: "C-01", CurrentQty: d("60"), DailyDemand: d("10"), LeadTimeDays: 3, SafetyStock: d("15")},
		{ComponentNumber: "LEGACY-77", Location: "Z-99", CurrentQty: d("12"), LeadTimeDays: 0},
	}
	for _, it := range stock {
		it.ID, it.CompanyID, it.UpdatedAt = uuid.NewString(), company.ID, now
		if err := invRepo.Create(ctx, it); err != nil {
			return nil, fmt.Errorf("seed: inventory: %w", err)
		}
	}

	poRepo := NewPurchaseOrderRepository(s)
	orders := []*entity.PurchaseOrder{
		{PONumber: "PO-1001", SupplierID: suppliers[0].ID, Status: entity.POStatusReceived, OrderDate: now.AddDate(0, 0, -30), ExpectedDate: day(-15),
			Items: []entity.PurchaseOrderItem{{ComponentNumber: "CMP-1001", Quantity: d("5000"), UnitPrice: d("0.05")}}},
		{PONumber: "PO-1002", SupplierID: suppliers[0].ID, Status: entity.POStatusShipped, OrderDate: now.AddDate(0, 0, -10), ExpectedDate: day(4),
			Items: []entity.PurchaseOrderItem{{ComponentNumber: "CMP-2001", Quantity: d("200"), UnitPrice: d("4.40")}, {ComponentNumber: "CMP-1002", Quantity: d("1000"), UnitPrice: d("0.18")}}},
		{PONumber: "PO-1003", SupplierID: suppliers[2].ID, Status: entity.POStatusApproved, OrderDate: now.AddDate(0, 0, -5), ExpectedDate: day(14),
			Items: []entity.PurchaseOrderItem{{ComponentNumber: "CMP-3001", Quantity: d("100"), UnitPrice: d("11.50")}}},
		{PONumber: "PO-1004", SupplierID: suppliers[1].ID, Status: entity.POStatusSubmitted, OrderDate: now.AddDate(0, 0, -2),
			Items: []entity.PurchaseOrderItem{{ComponentNumber: "CMP-4001", Quantity: d("300"), UnitPrice: d("3.60")}}},
		{PONumber: "PO-1005", SupplierID: suppliers[1].ID, Status: entity.POStatusDraft, OrderDate: now,
			Items: []entity.PurchaseOrderItem{{ComponentNumber: "CMP-4001", Quantity: d("100"), UnitPrice: d("3.75")}}},
	}
	for _, po := range orders {
		po.ID, po.CompanyID, po.Currency, po.CreatedAt, po.UpdatedAt = uuid.NewString(), company.ID, "USD", now, now
		po.ComputeTotal()
		if err := poRepo.Create(ctx, po); err != nil {
			return nil, fmt.Errorf("seed: purchase order: %w", err)
		}
	}

	shipmentRepo := NewShipmentRepository(s)
	shipments := []*entity.Shipment{
		{PurchaseOrderID: orders[0].ID, Carrier: "DHL", TrackingNumber: "DHL-558812", Status: entity.ShipmentStatusDelivered, ShippedAt: day(-20), EstimatedArrival: day(-15), DeliveredAt: day(-16)},
		{PurchaseOrderID: orders[1].ID, Carrier: "Maersk", TrackingNumber: "MSK-99120", Status: entity.ShipmentStatusInTransit, ShippedAt: day(-3), EstimatedArrival: day(4)},
		{PurchaseOrderID: orders[2].ID, Carrier: "UPS", TrackingNumber: "1Z999AA10123456784", Status: entity.ShipmentStatusPending, EstimatedArrival: day(14)},
	}
	for _, sh := range shipments {
		sh.ID, sh.CompanyID, sh.CreatedAt, sh.UpdatedAt = uuid.NewString(), company.ID, now, now
		if err := shipmentRepo.Create(ctx, sh); err != nil {
			return nil, fmt.Errorf("seed: shipment: %w", err)
		}
	}

	bomRepo := NewBOMRepository(s)
	boms := []*entity.BillOfMaterial{
		{ProductNumber: "PRD-CTRL-01", Name: "Controlador industrial", Version: "2.1", Status: entity.BOMStatusActive, Items: []entity.BomItem{
			{ComponentNumber: "CMP-1001", Quantity: d("24")}, {ComponentNumber: "CMP-1002", Quantity: d("6")},
			{ComponentNumber: "CMP-2001", Quantity: d("1")}, {ComponentNumber: "CMP-3001", Quantity: d("1")},
			{ComponentNumber: "CMP-4001", Quantity: d("1")},
		}},
		{ProductNumber: "PRD-SENS-02", Name: "Módulo sensor", Version: "1.0", Status: entity.BOMStatusDraft, Items: []entity.BomItem{
			{ComponentNumber: "CMP-1001", Quantity: d("8")}, {ComponentNumber: "CMP-2001", Quantity: d("1")},
		}},
	}
	for _, b := range boms {
		b.ID, b.CompanyID, b.CreatedAt, b.UpdatedAt = uuid.NewString(), company.ID, now, now
		if err := bomRepo.Create(ctx, b); err != nil {
			return nil, fmt.Errorf("seed: bom: %w", err)
		}
	}

	woRepo := NewWorkOrderRepository(s)
	workOrders := []*entity.WorkOrder{
		{WONumber: "WO-2001", BomID: boms[0].ID, Quantity: d("50"), Status: entity.WOStatusInProgress, Priority: entity.PriorityHigh, StartDate: day(-2), DueDate: day(5)},
		{WONumber: "WO-2002", BomID: boms[0].ID, Quantity: d("100"), Status: entity.WOStatusPlanned, Priority: entity.PriorityMedium, DueDate: day(20)},
		{WONumber: "WO-2003", BomID: boms[1].ID, Quantity: d("20"), Status: entity.WOStatusCompleted, Priority: entity.PriorityLow, StartDate: day(-12), DueDate: day(-4), CompletedAt: day(-5)},
	}
	for _, wo := range workOrders {
		wo.ID, wo.CompanyID, wo.CreatedAt, wo.UpdatedAt = uuid.NewString(), company.ID, now, now
		if err := woRepo.Create(ctx, wo); err != nil {
			return nil, fmt.Errorf("seed: work order: %w", err)
		}
	}

	rfqRepo := NewRFQRepository(s)
	quotedAmount := d("1150.00")
	rfqs := []*entity.RequestForQuotation{
		{RFQNumber: "RFQ-3001", Title: "PCB 4 capas Q3", SupplierID: suppliers[2].ID, Status: entity.RFQStatusResponded, IssueDate: now.AddDate(0, 0, -9), DueDate: day(-2), QuotedAmount: &quotedAmount,
			Items: []entity.RFQItem{{ComponentNumber: "CMP-3001", Quantity: d("100"), TargetPrice: d("11.00")}}},
		{RFQNumber: "RFQ-3002", Title: "Carcasas ABS", SupplierID: suppliers[1].ID, Status: entity.RFQStatusSent, IssueDate: now.AddDate(0, 0, -3), DueDate: day(7),
			Items: []entity.RFQItem{{ComponentNumber: "CMP-4001", Quantity: d("500"), TargetPrice: d("3.50")}}},
		{RFQNumber: "RFQ-3003", Title: "Microcontroladores 2025", SupplierID: suppliers[0].ID, Status: entity.RFQStatusDraft, IssueDate: now,
			Items: []entity.RFQItem{{ComponentNumber: "CMP-2001", Quantity: d("1000"), TargetPrice: d("4.10")}}},
	}
	for _, r := range rfqs {
		r.ID, r.CompanyID, r.CreatedAt, r.UpdatedAt = uuid.NewString(), company.ID, now, now
		if err := rfqRepo.Create(ctx, r); err != nil {
			return nil, fmt.Errorf("seed: rfq: %w", err)
		}
	}
	return tenant, nil
}
