package middleware

import (
	"strconv"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/observability/metrics"
	"github.com/gin-gonic/gin"
)

// RequestMetrics records request counts and latency by route template.
func RequestMetrics(m *metrics.LedgerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
