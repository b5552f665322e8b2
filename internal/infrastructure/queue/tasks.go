// Package queue tareas en segundo plano sobre asynq (Redis).
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/ports"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

const (
	// QueueDefault cola única del servicio.
	QueueDefault = "default"
	// TaskReorderScan escanea el inventario de una empresa y cachea las alertas de reorden.
	TaskReorderScan = "inventory:reorder_scan"
)

// ReorderScanPayload datos de la tarea de escaneo.
type ReorderScanPayload struct {
	CompanyID   string    `json:"company_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewReorderScanTask construye la tarea. Una sola tarea pendiente por empresa (Unique).
func NewReorderScanTask(companyID string, at time.Time) (*asynq.Task, error) {
	if companyID == "" {
		return nil, errors.New("reorder scan: company_id requerido")
	}
	body, err := json.Marshal(ReorderScanPayload{CompanyID: companyID, RequestedAt: at.UTC()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReorderScan, body,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
		asynq.Unique(time.Minute),
	), nil
}

var _ ports.TaskEnqueuer = (*Client)(nil)

// Client encola tareas.
type Client struct {
	client *asynq.Client
}

// NewClient construye el cliente asynq.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueReorderScan encola el escaneo de reorden y devuelve el ID de la tarea.
// Si ya hay un escaneo pendiente para la empresa no encola otro y devuelve un ID vacío.
func (c *Client) EnqueueReorderScan(ctx context.Context, companyID string) (string, error) {
	task, err := NewReorderScanTask(companyID, time.Now())
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", TaskReorderScan, err)
	}
	return info.ID, nil
}

// Close libera la conexión del cliente.
func (c *Client) Close() error {
	return c.client.Close()
}

// ReorderScanner lo que el worker necesita del caso de uso de reposición.
type ReorderScanner interface {
	Scan(ctx context.Context, companyID string) (*dto.ReorderAlertsResponse, error)
}

// ReorderScanHandler procesa TaskReorderScan.
func ReorderScanHandler(scanner ReorderScanner, log *logger.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ReorderScanPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil || payload.CompanyID == "" {
			log.Error().Err(err).Str("task", t.Type()).Msg("payload inválido; se descarta")
			return fmt.Errorf("payload inválido: %w", asynq.SkipRetry)
		}
		res, err := scanner.Scan(ctx, payload.CompanyID)
		if err != nil {
			return err
		}
		log.Info().
			Str("company_id", payload.CompanyID).
			Int("alerts", res.Total).
			Dur("queued_for", time.Since(payload.RequestedAt)).
			Msg("reorder scan procesado")
		return nil
	}
}
