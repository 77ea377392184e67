package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
)

// Logger writes one access line per request. /healthz and any extra skip
// paths are not logged so probes do not flood the output.
func Logger(skip ...string) gin.HandlerFunc {
	quiet := map[string]struct{}{"/healthz": {}}
	for _, p := range skip {
		quiet[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := quiet[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		status := c.Writer.Status()

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"remote_addr", c.ClientIP(),
			"latency_ms", elapsed.Milliseconds(),
		}
		if rid := GetRequestID(c.Request.Context()); rid != "" {
			kv = append(kv, "request_id", rid)
		}
		if uid, ok := UserID(c); ok {
			kv = append(kv, "user_id", uid)
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}

		accessLog(status)("HTTP request", kv...)
	}
}

// accessLog picks the level: 5xx error, 4xx warn, anything else info.
func accessLog(status int) func(string, ...interface{}) {
	switch {
	case status >= http.StatusInternalServerError:
		return logger.Errorw
	case status >= http.StatusBadRequest:
		return logger.Warnw
	default:
		return logger.Infow
	}
}
