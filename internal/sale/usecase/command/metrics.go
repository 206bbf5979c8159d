package command

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	inventory "github.com/tair/pos-engine/internal/inventory/domain"
)

// OutcomeCommitted labels sales that committed; aborted sales are labelled
// with their error kind
const OutcomeCommitted = "committed"

// Metrics holds the sale engine's Prometheus collectors
type Metrics struct {
	sales      *prometheus.CounterVec
	duration   prometheus.Histogram
	deductions *prometheus.CounterVec
	retries    prometheus.Counter
}

// NewMetrics creates the engine collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sales: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_sales_total",
				Help: "Sales registered, by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pos_sale_duration_seconds",
				Help:    "Duration of sale registration including retries",
				Buckets: prometheus.DefBuckets,
			},
		),
		deductions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_inventory_deductions_total",
				Help: "Committed inventory deductions, by ledger type",
			},
			[]string{"type"},
		),
		retries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pos_sale_retries_total",
				Help: "Sale attempts retried after a transaction conflict",
			},
		),
	}
	reg.MustRegister(m.sales, m.duration, m.deductions, m.retries)
	return m
}

func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	m.sales.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) deducted(t inventory.HistoryType, n int) {
	if n > 0 {
		m.deductions.WithLabelValues(string(t)).Add(float64(n))
	}
}
