package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/supplychain-api/internal/application/analytics"
	"github.com/jhoicas/supplychain-api/internal/application/auth"
	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/inventory"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/supplychain-api/internal/infrastructure/pdf"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/xmldoc"
	apphttp "github.com/jhoicas/supplychain-api/internal/interfaces/http"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

const demoPassword = "demo-password"

type server struct {
	app    *fiber.App
	tenant *memory.DemoTenant
	tokens map[string]string // rol → "Bearer ..."
}

// newServer API completa sobre almacenamiento en memoria con el tenant demo.
func newServer(t *testing.T) *server {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	tenant, err := memory.SeedDemo(ctx, store, demoPassword)
	require.NoError(t, err)

	fallback := decimal.NewFromInt(10)
	companies := memory.NewCompanyRepository(store)
	users := memory.NewUserRepository(store)
	suppliers := memory.NewSupplierRepository(store)
	components := memory.NewComponentRepository(store)
	inv := memory.NewInventoryRepository(store)
	orders := memory.NewPurchaseOrderRepository(store)
	shipments := memory.NewShipmentRepository(store)
	boms := memory.NewBOMRepository(store)
	workOrders := memory.NewWorkOrderRepository(store)
	rfqs := memory.NewRFQRepository(store)
	tx := memory.NewTxRunner(store)

	inventoryUC := inventory.NewInventoryUseCase(tx, inv, components, fallback, nil)
	poUC := usecase.NewPurchaseOrderUseCase(orders, suppliers, components, companies, tx, infrapdf.NewMarotoPDFGenerator(), nil)
	shipmentUC := usecase.NewShipmentUseCase(shipments, orders)
	bomUC := usecase.NewBOMUseCase(boms, components, fallback)
	woUC := usecase.NewWorkOrderUseCase(workOrders, boms, inv, components, fallback)
	rfqUC := usecase.NewRFQUseCase(rfqs, suppliers, components, companies, xmldoc.NewRFQBuilder())

	log := logger.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:          auth.NewAuthUseCase(users, companies, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		CompanyUC:       usecase.NewCompanyUseCase(companies),
		UserUC:          usecase.NewUserUseCase(users),
		SupplierUC:      usecase.NewSupplierUseCase(suppliers),
		ComponentUC:     usecase.NewComponentUseCase(components, suppliers),
		InventoryUC:     inventoryUC,
		ReplenishmentUC: inventory.NewReplenishmentUseCase(inv, nil, nil, time.Minute, log),
		PurchaseOrderUC: poUC,
		ShipmentUC:      shipmentUC,
		BOMUC:           bomUC,
		WorkOrderUC:     woUC,
		RFQUC:           rfqUC,
		DashboardUC: appanalytics.NewDashboardUseCase(appanalytics.Sources{
			Inventory:      inventoryUC,
			PurchaseOrders: poUC,
			Shipments:      shipmentUC,
			RFQs:           rfqUC,
			BOMs:           bomUC,
			WorkOrders:     woUC,
		}, nil, time.Minute, log),
		JWTSecret: testJWTSecret,
		Log:       log,
	})

	s := &server{app: app, tenant: tenant, tokens: map[string]string{}}
	for role, email := range tenant.Users {
		var out dto.LoginResponse
		resp := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: demoPassword})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decode(t, resp, &out)
		s.tokens[role] = "Bearer " + out.Token
	}
	return s
}

func (s *server) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	token := ""
	if role != "" {
		token = s.tokens[role]
	}
	return s.doToken(t, method, path, token, body)
}

// doToken igual que do pero con un Authorization arbitrario ("" = anónimo).
func (s *server) doToken(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := newServer(t)
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: s.tenant.Users["admin"], Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@acme.example", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsers_SoloAdmin(t *testing.T) {
	s := newServer(t)
	resp := s.do(t, http.MethodGet, "/api/users", "viewer", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var out dto.UserListResponse
	resp = s.do(t, http.MethodGet, "/api/users?sort=email", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, 4, out.Page.Total)
}

func (s *server) login(t *testing.T, email, password string) string {
	t.Helper()
	var out dto.LoginResponse
	resp := s.doToken(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	return "Bearer " + out.Token
}

func TestRegister_RolSolicitadoSeIgnora(t *testing.T) {
	s := newServer(t)
	body := map[string]string{
		"email":      "intruso@example.com",
		"password":   "clave-segura-1",
		"company_id": s.tenant.CompanyID,
		"role":       "admin",
	}
	resp := s.doToken(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.UserResponse
	decode(t, resp, &created)
	assert.Equal(t, "viewer", created.Role)

	token := s.login(t, "intruso@example.com", "clave-segura-1")
	resp = s.doToken(t, http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = s.doToken(t, http.MethodPatch, "/api/users/"+created.ID+"/role", token, dto.UpdateUserRoleRequest{Role: "admin"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Solo un admin de la empresa puede promoverlo.
	resp = s.do(t, http.MethodPatch, "/api/users/"+created.ID+"/role", "admin", dto.UpdateUserRoleRequest{Role: "buyer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.UserResponse
	decode(t, resp, &updated)
	assert.Equal(t, "buyer", updated.Role)

	token = s.login(t, "intruso@example.com", "clave-segura-1")
	resp = s.doToken(t, http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUsers_CambioDeRol_Validaciones(t *testing.T) {
	s := newServer(t)
	var list dto.UserListResponse
	resp := s.do(t, http.MethodGet, "/api/users?search=admin@", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	adminID := list.Items[0].ID

	resp = s.do(t, http.MethodPatch, "/api/users/"+adminID+"/role", "admin", dto.UpdateUserRoleRequest{Role: "viewer"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodPatch, "/api/users/"+adminID+"/role", "admin", dto.UpdateUserRoleRequest{Role: "superuser"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = s.do(t, http.MethodPatch, "/api/users/no-existe/role", "admin", dto.UpdateUserRoleRequest{Role: "buyer"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompanies_LecturaRestringidaAlTenant(t *testing.T) {
	s := newServer(t)
	resp := s.doToken(t, http.MethodGet, "/api/companies", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = s.doToken(t, http.MethodGet, "/api/companies/"+s.tenant.CompanyID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var me dto.CompanyResponse
	resp = s.do(t, http.MethodGet, "/api/companies/me", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &me)
	assert.Equal(t, s.tenant.CompanyID, me.ID)

	var other dto.CompanyResponse
	resp = s.doToken(t, http.MethodPost, "/api/companies", "", dto.CreateCompanyRequest{Name: "Otra SA", TaxID: "800999", Email: "ops@otra.example"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &other)

	resp = s.do(t, http.MethodGet, "/api/companies/"+other.ID, "admin", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// El primer usuario de la empresa nueva la administra; no ve la empresa demo.
	resp = s.doToken(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "duena@otra.example", Password: "clave-segura-1", CompanyID: other.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := s.login(t, "duena@otra.example", "clave-segura-1")
	var users dto.UserListResponse
	resp = s.doToken(t, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &users)
	assert.Equal(t, 1, users.Page.Total)
	resp = s.doToken(t, http.MethodGet, "/api/companies/"+s.tenant.CompanyID, token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPurchaseOrders_RolesYTransiciones(t *testing.T) {
	s := newServer(t)

	var sup dto.SupplierListResponse
	resp := s.do(t, http.MethodGet, "/api/suppliers?sort=name", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &sup)
	require.NotEmpty(t, sup.Items)

	in := dto.CreatePurchaseOrderRequest{
		SupplierID: sup.Items[0].ID,
		Items: []dto.PurchaseOrderItemRequest{
			{ComponentNumber: "CMP-1001", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.RequireFromString("0.05")},
		},
	}
	resp = s.do(t, http.MethodPost, "/api/purchase-orders", "viewer", in)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	var po dto.PurchaseOrderResponse
	resp = s.do(t, http.MethodPost, "/api/purchase-orders", "buyer", in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &po)
	assert.Equal(t, "draft", po.Status)
	assert.True(t, po.TotalAmount.Equal(decimal.NewFromInt(5)))

	resp = s.do(t, http.MethodPatch, "/api/purchase-orders/"+po.ID+"/status", "buyer", dto.StatusUpdateRequest{Status: "received"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, resp))

	resp = s.do(t, http.MethodPatch, "/api/purchase-orders/"+po.ID+"/status", "buyer", dto.StatusUpdateRequest{Status: "submitted"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var stats dto.StatsResponse
	resp = s.do(t, http.MethodGet, "/api/purchase-orders/stats", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &stats)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 2, stats.ByStatus["submitted"])
}

func TestPurchaseOrders_RecibirSumaInventario(t *testing.T) {
	s := newServer(t)

	var list dto.PurchaseOrderListResponse
	resp := s.do(t, http.MethodGet, "/api/purchase-orders?status=shipped", "buyer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "PO-1002", list.Items[0].PONumber)

	var po dto.PurchaseOrderResponse
	resp = s.do(t, http.MethodPost, "/api/purchase-orders/"+list.Items[0].ID+"/receive", "buyer", dto.ReceivePurchaseOrderRequest{Location: "RECV-01"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &po)
	assert.Equal(t, "received", po.Status)

	var stock dto.InventoryListResponse
	resp = s.do(t, http.MethodGet, "/api/inventory?search=RECV-01&sort=component_number", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &stock)
	require.Len(t, stock.Items, 2)
	assert.Equal(t, "CMP-1002", stock.Items[0].ComponentNumber)
	assert.True(t, stock.Items[0].CurrentQty.Equal(decimal.NewFromInt(1000)))
	assert.True(t, stock.Items[1].CurrentQty.Equal(decimal.NewFromInt(200)))
}

func TestInventory_OrdenDescendenteYValidacionDeQuery(t *testing.T) {
	s := newServer(t)

	var out dto.InventoryListResponse
	resp := s.do(t, http.MethodGet, "/api/inventory?sort=current_qty&order=desc", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	require.NotEmpty(t, out.Items)
	for i := 1; i < len(out.Items); i++ {
		assert.True(t, out.Items[i-1].CurrentQty.GreaterThanOrEqual(out.Items[i].CurrentQty))
	}

	for _, path := range []string{
		"/api/inventory?order=sideways",
		"/api/inventory?limit=500",
		"/api/inventory?offset=-3",
		"/api/purchase-orders?limit=-1",
	} {
		resp = s.do(t, http.MethodGet, path, "viewer", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Equal(t, "VALIDATION", errorCode(t, resp), path)
	}

	resp = s.do(t, http.MethodGet, "/api/inventory?limit=100&offset=0", "viewer", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var rp dto.ReorderPointResponse
	resp = s.do(t, http.MethodPost, "/api/inventory/reorder-point", "viewer", dto.ReorderPointRequest{
		DailyDemand: decimal.NewFromInt(10), LeadTimeDays: 5, SafetyStock: decimal.NewFromInt(20),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &rp)
	assert.True(t, rp.ReorderPoint.Equal(decimal.NewFromInt(70)))
}

func TestInventory_EscaneoEnLineaSinCola(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodPost, "/api/inventory/reorder-scan", "viewer", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	var scan dto.ReorderScanResponse
	resp = s.do(t, http.MethodPost, "/api/inventory/reorder-scan", "planner", nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	decode(t, resp, &scan)
	assert.False(t, scan.Queued)

	var alerts dto.ReorderAlertsResponse
	resp = s.do(t, http.MethodGet, "/api/inventory/reorder-alerts", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &alerts)
	assert.Equal(t, s.tenant.CompanyID, alerts.CompanyID)
	assert.Equal(t, len(alerts.Alerts), alerts.Total)
}

func TestBOM_ValidacionYExplosion(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodPost, "/api/boms", "planner", map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Details, "product_number")
	assert.Contains(t, e.Details, "items")

	var list dto.BOMListResponse
	resp = s.do(t, http.MethodGet, "/api/boms?search=PRD-SENS", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)

	var exp dto.BOMExplosionResponse
	resp = s.do(t, http.MethodGet, "/api/boms/"+list.Items[0].ID+"/explode?units=3", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &exp)
	require.Len(t, exp.Requirements, 2)
	assert.Equal(t, "CMP-1001", exp.Requirements[0].ComponentNumber)
	assert.True(t, exp.Requirements[0].Quantity.Equal(decimal.NewFromInt(24)))

	resp = s.do(t, http.MethodGet, "/api/boms/"+list.Items[0].ID+"/explode?units=abc", "viewer", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPatch, "/api/boms/"+list.Items[0].ID+"/status", "buyer", dto.StatusUpdateRequest{Status: "active"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestCantidadesFueraDeRango(t *testing.T) {
	s := newServer(t)

	var boms dto.BOMListResponse
	resp := s.do(t, http.MethodGet, "/api/boms", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &boms)
	require.NotEmpty(t, boms.Items)

	for _, units := range []string{"1e50000000", "1e12", "0.00001"} {
		resp = s.do(t, http.MethodGet, "/api/boms/"+boms.Items[0].ID+"/explode?units="+units, "viewer", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, units)
		assert.Equal(t, "VALIDATION", errorCode(t, resp), units)
	}

	var sup dto.SupplierListResponse
	resp = s.do(t, http.MethodGet, "/api/suppliers", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &sup)
	require.NotEmpty(t, sup.Items)

	// json.Number conserva el literal; serializar un decimal de ese tamaño lo expandiría.
	po := map[string]any{
		"supplier_id": sup.Items[0].ID,
		"items": []map[string]any{
			{"component_number": "CMP-1001", "quantity": json.Number("1e50000000"), "unit_price": json.Number("1")},
		},
	}
	resp = s.do(t, http.MethodPost, "/api/purchase-orders", "buyer", po)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	var inv dto.InventoryListResponse
	resp = s.do(t, http.MethodGet, "/api/inventory", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &inv)
	require.NotEmpty(t, inv.Items)

	resp = s.do(t, http.MethodPost, "/api/inventory/"+inv.Items[0].ID+"/adjust", "buyer", map[string]any{"delta": json.Number("1e50000000")})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestRFQ_DocumentoXMLConDigest(t *testing.T) {
	s := newServer(t)

	var list dto.RFQListResponse
	resp := s.do(t, http.MethodGet, "/api/rfqs?status=sent", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	id := list.Items[0].ID

	resp = s.do(t, http.MethodGet, "/api/rfqs/"+id+"/xml", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "rfq_RFQ-3002.xml")
	digest, err := xmldoc.Digest(body)
	require.NoError(t, err)
	assert.Equal(t, digest, resp.Header.Get(apphttp.HeaderDocumentDigest))

	var quoted dto.RFQResponse
	resp = s.do(t, http.MethodPost, "/api/rfqs/"+id+"/quote", "buyer", dto.QuoteRequest{QuotedAmount: decimal.NewFromInt(1700)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &quoted)
	assert.Equal(t, "responded", quoted.Status)
}

func TestRecursoInexistente_Retorna404(t *testing.T) {
	s := newServer(t)
	resp := s.do(t, http.MethodGet, "/api/work-orders/00000000-0000-0000-0000-00000000dead", "viewer", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestDashboard_Resumen(t *testing.T) {
	s := newServer(t)
	var out dto.DashboardSummaryDTO
	resp := s.do(t, http.MethodGet, "/api/dashboard/summary", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, 6, out.InventoryItems)
	assert.Equal(t, 5, out.PurchaseOrders.Total)
	assert.Equal(t, 3, out.Shipments.Total)
	assert.Equal(t, 3, out.RFQs.Total)
	assert.True(t, out.InventoryValue.IsPositive())
}
