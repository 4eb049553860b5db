package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names accepted by PrometheusMetrics
const (
	MetricLedgerAppend       = "ledger.append"
	MetricLedgerLoad         = "ledger.load"
	MetricLedgerLoaded       = "ledger.transactions_loaded"
	MetricLedgerSkipped      = "ledger.records_skipped"
	MetricHighlights         = "highlights.aggregated"
	MetricCircuitBreakerOpen = "circuit_breaker.rejected"
	MetricCircuitState       = "circuit_breaker.state"
)

type PrometheusMetrics struct {
	ledgerAppends       *prometheus.CounterVec
	ledgerLoads         *prometheus.CounterVec
	appendDuration      prometheus.Histogram
	loadDuration        prometheus.Histogram
	transactionsLoaded  prometheus.Histogram
	recordsSkipped      prometheus.Counter
	highlightsTotal     prometheus.Counter
	breakerRejections   *prometheus.CounterVec
	circuitBreakerState *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the ledger metrics on reg
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		ledgerAppends: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_appends_total",
				Help: "Total number of ledger appends",
			},
			[]string{"status"},
		),
		ledgerLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_loads_total",
				Help: "Total number of ledger loads",
			},
			[]string{"mode", "status"},
		),
		appendDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_append_duration_milliseconds",
				Help:    "Ledger append duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		loadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_load_duration_milliseconds",
				Help:    "Ledger load duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		transactionsLoaded: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_transactions_loaded",
				Help:    "Number of transactions returned by a ledger load",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		recordsSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_records_skipped_total",
				Help: "Malformed ledger records skipped by partial loads",
			},
		),
		highlightsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "highlights_aggregated_total",
				Help: "Total number of highlight aggregations",
			},
		),
		breakerRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_rejections_total",
				Help: "Calls rejected while the circuit breaker was open",
			},
			[]string{"service"},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case MetricLedgerAppend:
		m.ledgerAppends.WithLabelValues(status).Inc()
	case MetricLedgerLoad:
		m.ledgerLoads.WithLabelValues(tags["mode"], status).Inc()
	case MetricHighlights:
		m.highlightsTotal.Inc()
	case MetricCircuitBreakerOpen:
		m.breakerRejections.WithLabelValues(tags["service"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricLedgerAppend:
		m.appendDuration.Observe(float64(duration.Milliseconds()))
	case MetricLedgerLoad:
		m.loadDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricLedgerLoaded:
		m.transactionsLoaded.Observe(value)
	case MetricLedgerSkipped:
		m.recordsSkipped.Add(value)
	case MetricCircuitState:
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	}
}
