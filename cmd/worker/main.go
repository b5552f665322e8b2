// worker procesa las tareas en segundo plano (escaneo de reorden) encoladas por el API.
//
// Requiere STORAGE=postgres y REDIS_ADDR: el resultado del escaneo se deja en la
// caché Redis, de donde lo lee GET /api/inventory/reorder-alerts.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/jhoicas/supplychain-api/internal/application/inventory"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/cache"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/metrics"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/postgres"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/queue"
	"github.com/jhoicas/supplychain-api/pkg/config"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("worker")

	if cfg.App.Storage != config.StoragePostgres {
		log.Fatal().Str("storage", cfg.App.Storage).Msg("el worker requiere STORAGE=postgres")
	}
	if cfg.Redis.Addr == "" {
		log.Fatal().Msg("el worker requiere REDIS_ADDR")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	scanner := inventory.NewReplenishmentUseCase(
		postgres.NewInventoryRepository(pool),
		cache.NewRedisCache(rdb),
		nil, // el worker ejecuta el escaneo, no lo vuelve a encolar
		cfg.Redis.CacheTTL,
		log,
	)

	m := metrics.New()
	if cfg.Worker.MetricsAddr != "" {
		app := fiber.New(fiber.Config{DisableStartupMessage: true})
		app.Get("/metrics", m.Handler())
		go func() {
			if err := app.Listen(cfg.Worker.MetricsAddr); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
		defer app.Shutdown()
	}

	redisOpts := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	w := queue.NewWorker(redisOpts, cfg.Worker.Concurrency, scanner, m, log)

	log.Info().Int("concurrency", cfg.Worker.Concurrency).Msg("worker iniciado")
	if err := w.Run(ctx); err != nil {
		log.Error().Err(err).Msg("worker finalizado con error")
		return
	}
	log.Info().Msg("worker detenido")
}
