// Package metrics exposes Prometheus instruments for checkouts, ledger sync
// and RPC traffic. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kasir"

// Checkout results.
const (
	CheckoutOK             = "ok"
	CheckoutInvalidPayment = "invalid_payment"
	CheckoutPersistence    = "persistence_error"
)

// Sync results.
const (
	SyncOK            = "ok"
	SyncUnavailable   = "unavailable"
	SyncConfiguration = "configuration"
	SyncDisabled      = "disabled"
)

type Metrics struct {
	Checkouts   *prometheus.CounterVec
	Revenue     prometheus.Counter
	SyncResults *prometheus.CounterVec
	SyncLatency prometheus.Histogram
	RPCDuration *prometheus.HistogramVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Finalize attempts by result.",
		}, []string{"result"}),
		Revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Sum of recorded transaction totals.",
		}),
		SyncResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "results_total",
			Help:      "Remote ledger sync attempts by result.",
		}, []string{"result"}),
		SyncLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "duration_ms",
			Help:      "Remote ledger sync latency in milliseconds.",
			Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "duration_ms",
			Help:      "RPC latency in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}, []string{"procedure", "code"}),
	}

	reg.MustRegister(m.Checkouts, m.Revenue, m.SyncResults, m.SyncLatency, m.RPCDuration)
	return m
}

// ObserveCheckout counts a finalize attempt. total is added to revenue
// only for successful checkouts.
func (m *Metrics) ObserveCheckout(result string, total int64) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(result).Inc()
	if result == CheckoutOK {
		m.Revenue.Add(float64(total))
	}
}

// ObserveSync counts a sync attempt and its latency.
func (m *Metrics) ObserveSync(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SyncResults.WithLabelValues(result).Inc()
	m.SyncLatency.Observe(float64(elapsed.Milliseconds()))
}

// ObserveRPC records the latency of one RPC.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RPCDuration.WithLabelValues(procedure, code).Observe(float64(elapsed.Milliseconds()))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
