package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/response"
)

// PanicHook observes a recovered panic before the 500 is written.
type PanicHook func(c *gin.Context, recovered interface{}, stack []byte)

// Recovery turns a handler panic into a logged 500 {"message": "Internal error"}.
// The panic value never reaches the client.
func Recovery(hooks ...PanicHook) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			stack := debug.Stack()

			logger.Errorw("Panic recovered",
				"panic", fmt.Sprint(rec),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c.Request.Context()),
				"stack", string(stack),
			)
			for _, h := range hooks {
				h(c, rec, stack)
			}
			response.Fail(c, errno.ErrInternal)
		}()
		c.Next()
	}
}
