package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/OldStager01/host-sentinel/internal/logger"
)

const (
	TraceIDHeader = "X-Trace-ID"
	traceIDKey    = "trace_id"
)

// TraceID propagates or mints a request id and stores it on both the gin
// context and the request context.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(traceIDKey, traceID)
		c.Header(TraceIDHeader, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))

		c.Next()
	}
}

func GetTraceID(c *gin.Context) string {
	if traceID, ok := c.Get(traceIDKey); ok {
		if s, ok := traceID.(string); ok {
			return s
		}
	}
	return ""
}
