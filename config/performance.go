package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultSlowRequest = 200 * time.Millisecond

// PerformanceLogger logs every request with its latency and flags the ones
// slower than threshold. Requests are reported by route template so that
// /api/bookings/:id aggregates across ids.
func PerformanceLogger(threshold time.Duration) gin.HandlerFunc {
	if threshold <= 0 {
		threshold = defaultSlowRequest
	}
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		latency := time.Since(start)
		log.Printf("[PERF] %s %s | Status: %d | Time: %v", c.Request.Method, route, c.Writer.Status(), latency)

		if latency > threshold {
			log.Printf("[SLOW] %s %s took %v (threshold %v)", c.Request.Method, c.Request.URL.Path, latency, threshold)
		}
	}
}
