// Package metrics provides Prometheus metrics for the trading engine.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
)

const namespace = "finsim"

// Metrics holds all Prometheus metrics for the application. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	// Trading metrics
	OrdersExecuted   *prometheus.CounterVec
	OrdersRejected   *prometheus.CounterVec
	ExecutionLatency *prometheus.HistogramVec

	// Advisory metrics
	AdvisoryDropped prometheus.Counter
	AdvisoryFailed  prometheus.Counter

	// Market metrics
	MarketRefreshes *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates the metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OrdersExecuted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trading",
			Name:      "transactions_executed_total",
			Help:      "Total number of committed ledger transactions by type",
		}, []string{"type"}),
		OrdersRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trading",
			Name:      "transactions_rejected_total",
			Help:      "Total number of rejected requests by type and reason",
		}, []string{"type", "reason"}),
		ExecutionLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "trading",
			Name:      "execution_duration_seconds",
			Help:      "Time from request to committed transaction",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		AdvisoryDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advisory",
			Name:      "events_dropped_total",
			Help:      "Total number of advisory events dropped because the queue was full",
		}),
		AdvisoryFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advisory",
			Name:      "notify_failures_total",
			Help:      "Total number of advisory deliveries that failed or panicked",
		}),
		MarketRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "refreshes_total",
			Help:      "Total number of price series refreshes by status",
		}, []string{"status"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route pattern and status code",
		}, []string{"method", "route", "code"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// RecordExecuted counts a committed transaction and its latency.
func (m *Metrics) RecordExecuted(txType string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.OrdersExecuted.WithLabelValues(txType).Inc()
	m.ExecutionLatency.WithLabelValues(txType).Observe(elapsed.Seconds())
}

// RecordRejected counts a failed request, labelled by the error kind.
func (m *Metrics) RecordRejected(txType string, err error) {
	if m == nil {
		return
	}
	m.OrdersRejected.WithLabelValues(txType, Reason(err)).Inc()
}

// RecordAdvisoryDropped counts an event the dispatcher could not queue.
func (m *Metrics) RecordAdvisoryDropped() {
	if m == nil {
		return
	}
	m.AdvisoryDropped.Inc()
}

// RecordAdvisoryFailed counts a failed delivery.
func (m *Metrics) RecordAdvisoryFailed() {
	if m == nil {
		return
	}
	m.AdvisoryFailed.Inc()
}

// RecordMarketRefresh counts a refresh attempt.
func (m *Metrics) RecordMarketRefresh(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.MarketRefreshes.WithLabelValues(status).Inc()
}

// RecordHTTPRequest counts a served request. route is the router pattern,
// not the raw path, so portfolio IDs do not become label values.
func (m *Metrics) RecordHTTPRequest(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Reason maps an error onto a low-cardinality label value.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, apperrors.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, apperrors.ErrInvalidOrderType):
		return "invalid_order_type"
	case errors.Is(err, apperrors.ErrUnknownSymbol):
		return "unknown_symbol"
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, apperrors.ErrInsufficientShares):
		return "insufficient_shares"
	case errors.Is(err, apperrors.ErrPersistenceFailure):
		return "persistence_failure"
	default:
		return "other"
	}
}
