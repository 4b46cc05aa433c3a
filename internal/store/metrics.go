package store

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/idxstore/internal/record"
)

const (
	opInsert = "insert"
	opDelete = "delete"

	outcomeApplied = "applied"
	outcomeNoop    = "noop"
)

// Metrics holds the prometheus collectors updated by a Store.
// A nil *Metrics disables collection.
type Metrics struct {
	Operations   *prometheus.CounterVec
	Filters      *prometheus.CounterVec
	FilterErrors *prometheus.CounterVec
	Records      prometheus.Gauge
}

// NewMetrics creates the store collectors and registers them with reg.
// A nil reg leaves them unregistered. Registering twice on the same
// registerer panics, as with any prometheus collector.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idxstore",
			Name:      "operations_total",
			Help:      "Insert and delete calls by outcome",
		}, []string{"op", "outcome"}),
		Filters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idxstore",
			Name:      "filters_total",
			Help:      "Filter calls by column and access path",
		}, []string{"column", "path"}),
		FilterErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idxstore",
			Name:      "filter_errors_total",
			Help:      "Filter calls rejected because the value did not parse",
		}, []string{"column"}),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "idxstore",
			Name:      "records",
			Help:      "Live records in the store",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Filters, m.FilterErrors, m.Records)
	}
	return m
}

func (m *Metrics) observeOp(op, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) observeFilter(col record.Column, path string) {
	if m == nil {
		return
	}
	m.Filters.WithLabelValues(col.String(), path).Inc()
}

func (m *Metrics) observeFilterError(col record.Column) {
	if m == nil {
		return
	}
	m.FilterErrors.WithLabelValues(col.String()).Inc()
}

func (m *Metrics) setRecords(n int) {
	if m == nil {
		return
	}
	m.Records.Set(float64(n))
}
