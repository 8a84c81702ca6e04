package observability

import (
	"context"

	"go-userapi/internal/logging"

	"github.com/gin-gonic/gin"
)

// LoggerContextMiddleware 将 trace_id 注入 logger 并放入请求 context，
// handler 可通过 logging.FromContext(c.Request.Context()) 获取带字段 logger
func LoggerContextMiddleware(base *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if v, ok := c.Get(TraceIDKey); ok {
			ctx = context.WithValue(ctx, "trace_id", v)
		}
		lg := base.WithContext(ctx)
		ctx = logging.IntoContext(ctx, lg)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
