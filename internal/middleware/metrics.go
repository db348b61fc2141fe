package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festy23/prode/internal/metrics"
)

// Metrics returns a middleware that records request counts and latencies by route.
// Unmatched paths are recorded under a single "unmatched" route to bound label cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
