package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/orderpulse/internal/metrics"
)

// Metrics records request count and latency per route template.
// Unmatched routes are reported as "unmatched" to keep label cardinality bounded.
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		reg.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
