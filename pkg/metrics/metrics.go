package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "mi_inventory"

// Collector groups the counters the ledger services report to.
type Collector struct {
	registry *prometheus.Registry

	SalesFinalized      *prometheus.CounterVec
	SalesRevenue        prometheus.Counter
	LineStatusChanges   *prometheus.CounterVec
	CommandsRejected    *prometheus.CounterVec
	SettlementsRecorded *prometheus.CounterVec
	SettlementAmount    prometheus.Counter
	ActiveSessions      prometheus.Gauge
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

// NewCollector registers every metric on a fresh registry together with
// the Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		SalesFinalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_finalized_total",
			Help:      "Sales completed, by payment method.",
		}, []string{"payment_method"}),
		SalesRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_revenue_total",
			Help:      "Sum of finalized sale totals.",
		}),
		LineStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sale_line_status_changes_total",
			Help:      "Line status transitions, by target status.",
		}, []string{"status"}),
		CommandsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_rejected_total",
			Help:      "Engine commands rejected, by engine and reason.",
		}, []string{"engine", "reason"}),
		SettlementsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_recorded_total",
			Help:      "Creditor settlements recorded, by method.",
		}, []string{"method"}),
		SettlementAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_amount_total",
			Help:      "Sum of recorded settlement amounts.",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Open selling/ledger sessions.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.SalesFinalized,
		c.SalesRevenue,
		c.LineStatusChanges,
		c.CommandsRejected,
		c.SettlementsRecorded,
		c.SettlementAmount,
		c.ActiveSessions,
		c.HTTPRequests,
		c.HTTPDuration,
	)
	return c
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// AddAmount adds a decimal amount to a float counter.
func AddAmount(counter prometheus.Counter, amount decimal.Decimal) {
	f, _ := amount.Float64()
	if f > 0 {
		counter.Add(f)
	}
}
