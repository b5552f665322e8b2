package queue

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/supplychain-api/pkg/logger"
)

// Worker servidor asynq con los handlers del servicio.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logger.Logger
}

// TaskObserver registra duración y resultado de cada tarea (métricas).
type TaskObserver interface {
	ObserveTask(task string, start time.Time, err error) error
}

// NewWorker construye el worker. concurrency <= 0 usa 5; observer puede ser nil.
func NewWorker(redisOpts asynq.RedisClientOpt, concurrency int, scanner ReorderScanner, observer TaskObserver, log *logger.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueDefault: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, t *asynq.Task, err error) {
			log.Error().Err(err).Str("task", t.Type()).Msg("tarea fallida")
		}),
	})
	mux := asynq.NewServeMux()
	if observer != nil {
		mux.Use(observe(observer))
	}
	mux.HandleFunc(TaskReorderScan, ReorderScanHandler(scanner, log))
	return &Worker{server: srv, mux: mux, log: log}
}

// Run procesa tareas hasta que ctx se cancela.
func (w *Worker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return nil
	case err := <-errCh:
		return err
	}
}

func observe(o TaskObserver) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			start := time.Now()
			return o.ObserveTask(t.Type(), start, next.ProcessTask(ctx, t))
		})
	}
}
