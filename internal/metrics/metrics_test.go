package metrics_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/metrics"
)

func TestRecorders(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.RecordExecuted("BUY", 3*time.Millisecond)
	m.RecordExecuted("BUY", time.Millisecond)
	m.RecordRejected("SELL", fmt.Errorf("wrap: %w", apperrors.ErrInsufficientShares))
	m.RecordAdvisoryDropped()
	m.RecordAdvisoryFailed()
	m.RecordMarketRefresh(nil)
	m.RecordMarketRefresh(errors.New("boom"))
	m.RecordHTTPRequest(http.MethodPost, "/api/portfolio/{uuid}/orders", http.StatusCreated, time.Millisecond)
	m.RecordHTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersExecuted.WithLabelValues("BUY")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersRejected.WithLabelValues("SELL", "insufficient_shares")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdvisoryDropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdvisoryFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MarketRefreshes.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/api/portfolio/{uuid}/orders", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "finsim_trading_transactions_executed_total"))
}

func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordExecuted("BUY", time.Second)
		m.RecordRejected("BUY", apperrors.ErrInsufficientFunds)
		m.RecordAdvisoryDropped()
		m.RecordAdvisoryFailed()
		m.RecordMarketRefresh(nil)
		m.RecordHTTPRequest("GET", "/", 200, time.Second)
	})
}

func TestReason(t *testing.T) {
	assert.Equal(t, "none", metrics.Reason(nil))
	assert.Equal(t, "unknown_symbol", metrics.Reason(apperrors.ErrUnknownSymbol))
	assert.Equal(t, "insufficient_funds", metrics.Reason(&apperrors.OrderError{Kind: apperrors.ErrInsufficientFunds}))
	assert.Equal(t, "persistence_failure", metrics.Reason(fmt.Errorf("%w: %w", apperrors.ErrPersistenceFailure, errors.New("disk"))))
	assert.Equal(t, "other", metrics.Reason(errors.New("???")))
}
