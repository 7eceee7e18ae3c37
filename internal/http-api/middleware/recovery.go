package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"mimo/internal/http-api/response"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 and logs the stack.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic_recovered",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(response.RequestIDKey),
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				response.Message(c, http.StatusInternalServerError, response.MsgInternal)
			}
		}()
		c.Next()
	}
}
