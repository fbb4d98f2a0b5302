// Package metrics expone contadores Prometheus de la API, los recordatorios y las consultas de info.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec   // method, route, status
	HTTPRequestDuration *prometheus.HistogramVec // method, route

	ReminderTicksTotal prometheus.Counter
	RemindersTotal     *prometheus.CounterVec // outcome: sent, suppressed, failed, duplicate

	InfoLookupsTotal *prometheus.CounterVec // result: ok, not_configured, failed

	registry *prometheus.Registry
}

// New registra las métricas en registry. Con nil crea un registry propio
// con los collectors de proceso y runtime.
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register pillpal metrics: %w", err)
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pillpal_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pillpal_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 20},
		},
		[]string{"method", "route"},
	)

	m.ReminderTicksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pillpal_reminder_ticks_total",
		Help: "Total reminder evaluation ticks",
	})
	m.RemindersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pillpal_reminders_total",
			Help: "Due reminders by outcome",
		},
		[]string{"outcome"},
	)

	m.InfoLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pillpal_info_lookups_total",
			Help: "Medication info lookups by result",
		},
		[]string{"result"},
	)
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.HTTPRequestsTotal.Describe(ch)
	m.HTTPRequestDuration.Describe(ch)
	m.ReminderTicksTotal.Describe(ch)
	m.RemindersTotal.Describe(ch)
	m.InfoLookupsTotal.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.HTTPRequestsTotal.Collect(ch)
	m.HTTPRequestDuration.Collect(ch)
	m.ReminderTicksTotal.Collect(ch)
	m.RemindersTotal.Collect(ch)
	m.InfoLookupsTotal.Collect(ch)
}

// Handler sirve /metrics sobre el registry propio.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ReminderTick() { m.ReminderTicksTotal.Inc() }

func (m *Metrics) Reminder(outcome string) {
	m.RemindersTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) InfoLookup(result string) {
	m.InfoLookupsTotal.WithLabelValues(result).Inc()
}
