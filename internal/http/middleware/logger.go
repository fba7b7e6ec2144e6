package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Djberg2/GrndWrkv0/internal/metrics"
)

// Logger logs one line per request and records it in m (m may be nil).
func Logger(l zerolog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(method, path, strconv.Itoa(status), latency.Seconds())

		rid := c.GetString(RequestIDHeader)
		ev := l.Info()
		if status >= 500 {
			ev = l.Error()
		}
		ev.Str("request_id", rid).
			Str("method", method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Msg("request")
	}
}
