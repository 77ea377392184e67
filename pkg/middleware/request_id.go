package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/medreq/pkg/id"
)

// HeaderXRequestID carries the request id in both directions.
const HeaderXRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID tags every request with an id, echoes it in the response header
// and stores it in the request context. An incoming X-Request-ID (set by the
// medreq client) is kept so both sides log the same value. Without a
// generator argument new ids are ULIDs.
func RequestID(gen ...id.Generator) gin.HandlerFunc {
	var g id.Generator = id.NewULIDGenerator()
	if len(gen) > 0 && gen[0] != nil {
		g = gen[0]
	}

	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if rid == "" {
			rid = g.Generate()
		}
		c.Header(HeaderXRequestID, rid)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}

// WithRequestID stores rid in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// GetRequestID returns the id stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}
