package middleware_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/techiepharm/FinSim-sub001/internal/api/middleware"
	"github.com/techiepharm/FinSim-sub001/internal/metrics"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/market/instruments", nil)
	req.URL.Path += "\r\nforged"
	middleware.Logger(next).ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	if !strings.Contains(line, "[http]") || !strings.Contains(line, "418") {
		t.Errorf("Expected status in log line, got %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Errorf("Expected CR/LF to be stripped from the path, got %q", line)
	}
}

// TestMetrics tests that requests are counted by route pattern.
//
// WHY: Labelling by raw path would create one series per portfolio ID.
func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := chi.NewRouter()
	r.Use(middleware.Metrics(m))
	r.Get("/api/portfolio/{uuid}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/portfolio/"+id, nil))
	}

	got := promtestutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/portfolio/{uuid}", "200"))
	if got != 3 {
		t.Errorf("Expected 3 requests for the route pattern, got %v", got)
	}
}
