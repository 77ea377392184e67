package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/response"
)

// ContextKeyUserID is the gin context key holding the authenticated user id.
const ContextKeyUserID = "user_id"

// Verifier resolves a bearer token to a user id.
type Verifier interface {
	Verify(ctx context.Context, token string) (uint64, error)
}

// Auth rejects requests without a valid bearer token with 401
// {"message":"Unauthenticated."}.
func Auth(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Fail(c, errno.ErrUnauthorized)
			return
		}

		uid, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debugw("Token rejected",
				"error", err.Error(),
				"request_id", GetRequestID(c.Request.Context()))
			// 对外统一返回 Unauthenticated.
			response.Fail(c, errno.ErrUnauthorized)
			return
		}

		c.Set(ContextKeyUserID, uid)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0, false
	}
	uid, ok := v.(uint64)
	return uid, ok
}

func bearerToken(header string) (string, bool) {
	const scheme = "Bearer"
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], scheme) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
