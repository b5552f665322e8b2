// Package metrics expone métricas Prometheus del API y del worker.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics registry propio más los colectores HTTP y de tareas.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	taskRuns        *prometheus.CounterVec
	taskDuration    *prometheus.HistogramVec
}

// New inicializa el registry con métricas de proceso y de runtime Go.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supplychain_http_requests_total",
		Help: "Peticiones HTTP por método, ruta y código de estado.",
	}, []string{"method", "route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "supplychain_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP por ruta.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supplychain_task_runs_total",
		Help: "Ejecuciones de tareas en segundo plano por tipo y resultado.",
	}, []string{"task", "status"})
	taskDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "supplychain_task_duration_seconds",
		Help:    "Duración de las tareas en segundo plano.",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requests, duration, runs, taskDuration,
	)
	return &Metrics{
		registry:        registry,
		requestsTotal:   requests,
		requestDuration: duration,
		taskRuns:        runs,
		taskDuration:    taskDuration,
	}
}

// Middleware registra conteo y latencia de cada petición. Se etiqueta con el
// patrón de la ruta (/api/boms/:id) y no con la URL concreta.
func (m *Metrics) Middleware() fiber.Handler {
	if m == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := "unknown"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		m.requestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler endpoint /metrics en formato de exposición Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	if m == nil {
		return func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusServiceUnavailable) }
	}
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// ObserveTask registra una ejecución de tarea y devuelve err sin modificar.
func (m *Metrics) ObserveTask(task string, start time.Time, err error) error {
	if m == nil {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.taskRuns.WithLabelValues(task, status).Inc()
	m.taskDuration.WithLabelValues(task).Observe(time.Since(start).Seconds())
	return err
}

// Registerer expone el registry para colectores adicionales.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}
