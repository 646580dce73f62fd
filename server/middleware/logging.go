package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alextes/calabi/logger"
)

// probePaths are polled by orchestrators and not logged.
var probePaths = map[string]bool{
	"/health": true,
	"/ready":  true,
	"/alive":  true,
}

// RequestLogger returns a Gin middleware that logs every request with
// method, path, status and latency. Probe paths are skipped. A nil log uses
// the global logger.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if probePaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := logger.Fields(
			"method", c.Request.Method,
			"path", path,
			logger.FieldStatus, status,
			"latency", latency.String(),
			"client", c.ClientIP(),
		)
		if id := c.GetString(RequestIDKey); id != "" {
			fields[RequestIDKey] = id
		}
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}
		logByStatus(log, fields, status)
	}
}

// logByStatus logs at a level picked from the HTTP status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
