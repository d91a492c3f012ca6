package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GORLEABHILASH/booklovers/internal/observability"
)

// Metrics records request counts and latency by route template.
// Unmatched paths share one label so ids never leak into label values.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
