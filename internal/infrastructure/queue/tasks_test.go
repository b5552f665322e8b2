package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

type fakeScanner struct {
	companies []string
	err       error
}

func (f *fakeScanner) Scan(_ context.Context, companyID string) (*dto.ReorderAlertsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.companies = append(f.companies, companyID)
	return &dto.ReorderAlertsResponse{CompanyID: companyID, Total: 2}, nil
}

func TestNewReorderScanTask(t *testing.T) {
	task, err := NewReorderScanTask("c1", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, TaskReorderScan, task.Type())

	var p ReorderScanPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "c1", p.CompanyID)

	_, err = NewReorderScanTask("", time.Now())
	assert.Error(t, err)
}

func TestReorderScanHandler(t *testing.T) {
	scanner := &fakeScanner{}
	h := ReorderScanHandler(scanner, logger.Nop())

	task, err := NewReorderScanTask("c1", time.Now())
	require.NoError(t, err)
	require.NoError(t, h.ProcessTask(context.Background(), task))
	assert.Equal(t, []string{"c1"}, scanner.companies)

	err = h.ProcessTask(context.Background(), asynq.NewTask(TaskReorderScan, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	scanner.err = errors.New("db caída")
	err = h.ProcessTask(context.Background(), task)
	assert.False(t, errors.Is(err, asynq.SkipRetry), "errores transitorios se reintentan")
}

func TestClient_EnqueueReorderScan(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	id, err := client.EnqueueReorderScan(context.Background(), "c1")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// Unique: un segundo escaneo pendiente para la misma empresa no se duplica.
	again, err := client.EnqueueReorderScan(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, again)
}
