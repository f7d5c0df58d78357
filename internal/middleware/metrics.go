package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/ledger_reconciler/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request latency per matched route.
func MetricsMiddleware(m *metrics.ReconMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
