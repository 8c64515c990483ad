package middleware

import (
	"basegraph.app/forum/common/logger"
	"github.com/gin-gonic/gin"
)

// TraceHeader echoes the active trace id so clients can quote it in reports.
func TraceHeader(headerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if traceID := logger.TraceIDFromContext(c.Request.Context()); traceID != "" {
			c.Header(headerName, traceID)
		}
		c.Next()
	}
}
