package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RegistraPorPatronDeRuta(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/boms/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/boms/"+id, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/boms/:id", "204")))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "supplychain_http_requests_total")
}

func TestObserveTask(t *testing.T) {
	m := New()
	boom := errors.New("boom")
	assert.NoError(t, m.ObserveTask("scan", time.Now(), nil))
	assert.ErrorIs(t, m.ObserveTask("scan", time.Now(), boom), boom)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.taskRuns.WithLabelValues("scan", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.taskRuns.WithLabelValues("scan", "failure")))

	var nilMetrics *Metrics
	assert.ErrorIs(t, nilMetrics.ObserveTask("scan", time.Now(), boom), boom)
}
