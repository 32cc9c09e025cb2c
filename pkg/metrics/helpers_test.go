package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestComputeApproximateRequestSize(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/payments/sandbox/pay", strings.NewReader(`{"plan":"vip1d"}`))
	req.Header.Set("Content-Type", "application/json")

	got := computeApproximateRequestSize(req)
	want := len("/api/payments/sandbox/pay") + len("POST") + len("HTTP/1.1") +
		len("Content-Type") + len("application/json") + len("example.com") + len(`{"plan":"vip1d"}`)
	require.Equal(t, want, got)
}

func TestMillisecondsSince(t *testing.T) {
	ms := MillisecondsSince(time.Now().Add(-50 * time.Millisecond))
	require.GreaterOrEqual(t, ms, 50.0)
}

func TestPrometheus_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	opts := NewPrometheusOptions{
		Subsystem:               "metrics_test",
		ReqCntURLLabelMappingFn: func(c *gin.Context) string { return c.FullPath() },
		Logger:                  zap.NewNop().Sugar(),
	}
	// a second instance reuses the collectors of the first
	_ = NewPrometheus(opts)
	p := NewPrometheus(opts)

	r := gin.New()
	p.Use(r)
	r.GET("/novels/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/novels/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `metrics_test_requests_total{code="200",method="GET",route="/novels/:id"} 2`)
}
