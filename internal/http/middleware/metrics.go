package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-navigation/internal/observability"
)

// Probe and scrape endpoints are left out of the API series.
var unmeteredRoutes = map[string]struct{}{
	"/healthcheck": {},
	"/readyz":      {},
	"/metrics":     {},
}

// Metrics records request count, latency and in-flight requests per matched
// route. Requests that match no route share the "unmatched" label so random
// paths cannot grow the series set.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if _, skip := unmeteredRoutes[c.FullPath()]; skip {
			c.Next()
			return
		}
		start := time.Now()
		m.APIInflightInc()
		defer m.APIInflightDec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
