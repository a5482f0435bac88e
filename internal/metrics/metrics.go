// Package metrics exposes ledger and HTTP counters on a private Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"novares-ledger-go/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "novares"

// Collector is safe for concurrent use. A nil *Collector records nothing.
type Collector struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	pending      prometheus.Gauge
	accounts     *prometheus.GaugeVec
	saveDuration *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = defaultNamespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "operations_total",
				Help:      "Ledger operations by outcome (ok or error kind).",
			},
			[]string{"operation", "outcome"},
		),
		pending: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "pending_transactions",
				Help:      "Transfer requests awaiting an administrator decision.",
			},
		),
		accounts: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "accounts",
				Help:      "Accounts by onboarding status.",
			},
			[]string{"status"},
		),
		saveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "persistence",
				Name:      "save_duration_seconds",
				Help:      "Duration of write-through state saves.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"result"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "path"},
		),
	}

	c.registry.MustRegister(
		c.operations,
		c.pending,
		c.accounts,
		c.saveDuration,
		c.httpRequests,
		c.httpDuration,
	)
	return c
}

// Registry returns the underlying registry, mainly for tests
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler exposing the registered metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveOperation(operation string, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = models.Kind(err)
	}
	c.operations.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) ObserveSave(d time.Duration, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.saveDuration.WithLabelValues(result).Observe(d.Seconds())
}

// SetLedgerSize refreshes the gauges from a consistent view of the ledger
func (c *Collector) SetLedgerSize(byStatus map[models.AccountStatus]int, pending int) {
	if c == nil {
		return
	}
	for _, s := range []models.AccountStatus{models.StatusPending, models.StatusActive} {
		c.accounts.WithLabelValues(string(s)).Set(float64(byStatus[s]))
	}
	c.pending.Set(float64(pending))
}

func (c *Collector) ObserveHTTP(method, path string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
