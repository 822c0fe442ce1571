package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/logging"
)

// Timeout puts a deadline on the request context. Handlers run on the
// request goroutine and must honour ctx; if the deadline passed and the
// handler wrote nothing, a TIMEOUT envelope is returned.
//
// Quote rendering always writes a body, so for those routes the deadline
// surfaces as the fallback message rather than as an error.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) || c.Writer.Written() {
			return
		}

		logging.FromContext(ctx).WarnContext(ctx, "request timeout",
			slog.String("path", c.Request.URL.Path),
			slog.Duration("timeout", timeout),
		)

		dto.Abort(c, dto.NewErrorResponse(dto.ErrorCodeTimeout, "request timeout exceeded"))
	}
}
