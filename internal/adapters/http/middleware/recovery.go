package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/logging"
)

// Recovery turns a panic into a 500 error envelope and logs it with the
// stack. It must be first in the chain.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := c.Request.Context()
			logging.FromContextOr(ctx, logger).ErrorContext(ctx, "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("trace_id", dto.TraceID(c)),
			)

			dto.Abort(c, dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred"))
		}()

		c.Next()
	}
}
