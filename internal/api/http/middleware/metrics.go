package middleware

import (
	"strconv"
	"time"

	"github.com/driftpoint/beaconhub/internal/telemetry"
	"github.com/gin-gonic/gin"
)

// Metrics records per-request counters and latency. The route template is
// used as the path label so unmatched routes don't explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		telemetry.RequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		telemetry.RequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
