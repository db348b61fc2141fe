package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/prode/internal/metrics"
)

func TestMetrics_RecordsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()

	r := gin.New()
	r.Use(Metrics(metrics.New(reg)))
	r.GET("/matches/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/matches/1", "/matches/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP prode_http_requests_total HTTP requests by method, route and status code.
# TYPE prode_http_requests_total counter
prode_http_requests_total{method="GET",route="/matches/:id",status="200"} 2
prode_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, promtestutil.GatherAndCompare(reg, strings.NewReader(expected), "prode_http_requests_total"))

	count, err := promtestutil.GatherAndCount(reg, "prode_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
