package middleware

import (
	"context"
	"log/slog"

	"mimo/internal/http-api/response"
	"mimo/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const APIKeyHeader = "x-api-key"

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID int64
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by APIKeyAuth, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// APIKeyAuth resolves the x-api-key header to a user and stores the result
// in the request context. Missing or unknown keys are rejected with 401.
func APIKeyAuth(identities service.IdentityService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			response.Error(c, logger, service.ErrUnauthorized)
			return
		}

		userID, err := identities.Authenticate(c.Request.Context(), key)
		if err != nil {
			response.Error(c, logger, err)
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), Identity{UserID: userID}))
		c.Next()
	}
}
