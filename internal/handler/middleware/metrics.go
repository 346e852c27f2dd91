package middleware

import (
	"strconv"
	"time"

	"zurbo/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// HTTPMetrics labels by route template so path ids do not explode cardinality.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
