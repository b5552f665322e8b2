package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/supplychain-api/internal/application/analytics"
	"github.com/jhoicas/supplychain-api/internal/application/auth"
	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/inventory"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyUC       *usecase.CompanyUseCase
	UserUC          *usecase.UserUseCase
	SupplierUC      *usecase.SupplierUseCase
	ComponentUC     *usecase.ComponentUseCase
	InventoryUC     *inventory.InventoryUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	PurchaseOrderUC *usecase.PurchaseOrderUseCase
	ShipmentUC      *usecase.ShipmentUseCase
	BOMUC           *usecase.BOMUseCase
	WorkOrderUC     *usecase.WorkOrderUseCase
	RFQUC           *usecase.RFQUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	JWTSecret       string
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log.Component("auth"))
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de empresa (público: el primer usuario registrado queda como admin)
	companyHandler := NewCompanyHandler(deps.CompanyUC, log.Component("companies"))
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token con company_id)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), requireCompany)

	companies := protected.Group("/companies")
	companies.Get("/me", companyHandler.Current)
	companies.Get("/:id", companyHandler.GetByID)

	buyers := RequireRole(entity.RoleAdmin, entity.RoleBuyer)
	planners := RequireRole(entity.RoleAdmin, entity.RolePlanner)
	operators := RequireRole(entity.RoleAdmin, entity.RoleBuyer, entity.RolePlanner)

	userHandler := NewUserHandler(deps.UserUC, log.Component("users"))
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id/role", userHandler.UpdateRole)

	supplierHandler := NewSupplierHandler(deps.SupplierUC, log.Component("suppliers"))
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", buyers, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	componentHandler := NewComponentHandler(deps.ComponentUC, log.Component("product"))
	products := protected.Group("/product")
	products.Post("/", buyers, componentHandler.Create)
	products.Get("/", componentHandler.List)
	products.Get("/:id", componentHandler.GetByID)
	products.Put("/:id", buyers, componentHandler.Update)
	products.Delete("/:id", buyers, componentHandler.Delete)

	// Inventario: las rutas fijas van antes de /:id
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReplenishmentUC, log.Component("inventory"))
	inv := protected.Group("/inventory")
	inv.Get("/value", inventoryHandler.Value)
	inv.Get("/below-reorder", inventoryHandler.BelowReorder)
	inv.Get("/reorder-alerts", inventoryHandler.Alerts)
	inv.Post("/reorder-point", inventoryHandler.ReorderPoint)
	inv.Post("/reorder-scan", operators, inventoryHandler.RequestScan)
	inv.Post("/", operators, inventoryHandler.Upsert)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Put("/:id/quantity", operators, inventoryHandler.UpdateQuantity)
	inv.Post("/:id/adjust", operators, inventoryHandler.Adjust)

	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC, log.Component("purchase_orders"))
	pos := protected.Group("/purchase-orders")
	pos.Get("/stats", poHandler.Stats)
	pos.Post("/", buyers, poHandler.Create)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.GetByID)
	pos.Patch("/:id/status", buyers, poHandler.UpdateStatus)
	pos.Post("/:id/receive", buyers, poHandler.Receive)
	pos.Get("/:id/pdf", poHandler.DownloadPDF)

	shipmentHandler := NewShipmentHandler(deps.ShipmentUC, log.Component("shipments"))
	shipments := protected.Group("/shipments")
	shipments.Get("/stats", shipmentHandler.Stats)
	shipments.Post("/", buyers, shipmentHandler.Create)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Patch("/:id/status", buyers, shipmentHandler.UpdateStatus)

	bomHandler := NewBOMHandler(deps.BOMUC, log.Component("boms"))
	boms := protected.Group("/boms")
	boms.Get("/stats", bomHandler.Stats)
	boms.Post("/", planners, bomHandler.Create)
	boms.Get("/", bomHandler.List)
	boms.Get("/:id", bomHandler.GetByID)
	boms.Patch("/:id/status", planners, bomHandler.UpdateStatus)
	boms.Get("/:id/explode", bomHandler.Explode)
	boms.Get("/:id/cost", bomHandler.Cost)

	woHandler := NewWorkOrderHandler(deps.WorkOrderUC, log.Component("work_orders"))
	wos := protected.Group("/work-orders")
	wos.Get("/stats", woHandler.Stats)
	wos.Post("/", planners, woHandler.Create)
	wos.Get("/", woHandler.List)
	wos.Get("/:id", woHandler.GetByID)
	wos.Patch("/:id/status", planners, woHandler.UpdateStatus)
	wos.Get("/:id/requirements", woHandler.Requirements)

	rfqHandler := NewRFQHandler(deps.RFQUC, log.Component("rfqs"))
	rfqs := protected.Group("/rfqs")
	rfqs.Get("/stats", rfqHandler.Stats)
	rfqs.Post("/", buyers, rfqHandler.Create)
	rfqs.Get("/", rfqHandler.List)
	rfqs.Get("/:id", rfqHandler.GetByID)
	rfqs.Patch("/:id/status", buyers, rfqHandler.UpdateStatus)
	rfqs.Post("/:id/quote", buyers, rfqHandler.Quote)
	rfqs.Get("/:id/xml", rfqHandler.DownloadXML)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log.Component("dashboard"))
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}

// requireCompany rechaza tokens sin company_id.
func requireCompany(c *fiber.Ctx) error {
	if GetCompanyID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	return c.Next()
}
