package middleware

import (
	"net/http"

	"mimo/internal/http-api/response"

	"github.com/gin-gonic/gin"
)

// RespondTo rejects requests whose Accept header excludes every offered
// media type. A missing Accept header accepts anything.
func RespondTo(offered ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Accept") == "" {
			c.Next()
			return
		}
		if c.NegotiateFormat(offered...) == "" {
			response.Message(c, http.StatusNotAcceptable, response.MsgNotAcceptable)
			return
		}
		c.Next()
	}
}
