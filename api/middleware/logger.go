package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/host-sentinel/internal/logger"
)

// RequestLogger logs one entry per request, tagged with the monitored target
// and the authenticated user when present. Successful health probes are not
// logged.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		if status < 400 && strings.HasPrefix(path, "/health") {
			return
		}
		fields := map[string]interface{}{
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		}
		if query != "" {
			fields["query"] = query
		}
		if target := c.Query("target"); target != "" {
			fields["target"] = target
		}
		if username := GetUsername(c); username != "" {
			fields["username"] = username
		}
		if traceID := GetTraceID(c); traceID != "" {
			fields["trace_id"] = traceID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		entry := logger.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("server error")
		case status >= 400:
			entry.Warn("client error")
		default:
			entry.Debug("request completed")
		}
	}
}
