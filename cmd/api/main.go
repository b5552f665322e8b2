package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"

	appanalytics "github.com/jhoicas/supplychain-api/internal/application/analytics"
	"github.com/jhoicas/supplychain-api/internal/application/auth"
	"github.com/jhoicas/supplychain-api/internal/application/inventory"
	"github.com/jhoicas/supplychain-api/internal/application/ports"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/cache"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/supplychain-api/internal/infrastructure/pdf"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/queue"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/xmldoc"
	httpRouter "github.com/jhoicas/supplychain-api/internal/interfaces/http"
	"github.com/jhoicas/supplychain-api/pkg/config"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer repos.close()

	// Redis es opcional: sin REDIS_ADDR no hay caché y el escaneo de reorden corre en línea.
	var (
		cacheStore ports.Cache
		enqueuer   ports.TaskEnqueuer
	)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		cacheStore = cache.NewRedisCache(rdb)

		taskClient := queue.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer taskClient.Close()
		enqueuer = taskClient
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: caché y cola de tareas desactivadas")
	}

	fallback := cfg.Inventory.FallbackUnitPrice
	stockViews := inventory.NewStockViews(cacheStore, log.Component("cache"))
	inventoryUC := inventory.NewInventoryUseCase(repos.tx, repos.inventory, repos.components, fallback, stockViews)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.inventory, cacheStore, enqueuer, cfg.Redis.CacheTTL, log.Component("replenishment"))
	purchaseOrderUC := usecase.NewPurchaseOrderUseCase(
		repos.orders, repos.suppliers, repos.components, repos.companies, repos.tx,
		infrapdf.NewMarotoPDFGenerator(), stockViews,
	)
	shipmentUC := usecase.NewShipmentUseCase(repos.shipments, repos.orders)
	bomUC := usecase.NewBOMUseCase(repos.boms, repos.components, fallback)
	workOrderUC := usecase.NewWorkOrderUseCase(repos.workOrders, repos.boms, repos.inventory, repos.components, fallback)
	rfqUC := usecase.NewRFQUseCase(repos.rfqs, repos.suppliers, repos.components, repos.companies, xmldoc.NewRFQBuilder())
	dashboardUC := appanalytics.NewDashboardUseCase(appanalytics.Sources{
		Inventory:      inventoryUC,
		PurchaseOrders: purchaseOrderUC,
		Shipments:      shipmentUC,
		RFQs:           rfqUC,
		BOMs:           bomUC,
		WorkOrders:     workOrderUC,
	}, cacheStore, cfg.Redis.CacheTTL, log.Component("dashboard"))
	authUC := auth.NewAuthUseCase(repos.users, repos.companies, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	m := metrics.New()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(m.Middleware())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    "Supply Chain API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})
	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       usecase.NewCompanyUseCase(repos.companies),
		UserUC:          usecase.NewUserUseCase(repos.users),
		SupplierUC:      usecase.NewSupplierUseCase(repos.suppliers),
		ComponentUC:     usecase.NewComponentUseCase(repos.components, repos.suppliers),
		InventoryUC:     inventoryUC,
		ReplenishmentUC: replenishmentUC,
		PurchaseOrderUC: purchaseOrderUC,
		ShipmentUC:      shipmentUC,
		BOMUC:           bomUC,
		WorkOrderUC:     workOrderUC,
		RFQUC:           rfqUC,
		DashboardUC:     dashboardUC,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
