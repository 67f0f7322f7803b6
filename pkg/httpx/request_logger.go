package httpx

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/gin-gonic/gin"
)

// RequestLogger — строка лога на запрос; ответы 5xx пишутся как warn.
// request_id и trace добавляет сам логгер из контекста. /metrics и /ping не логируются.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		switch route {
		case "/metrics", "/ping":
			return
		case "":
			route = c.Request.URL.Path
		}

		logf := log.Infof
		if c.Writer.Status() >= http.StatusInternalServerError {
			logf = log.Warnf
		}
		logf(c.Request.Context(), "%s %s status=%d dur=%s bytes=%d ip=%s",
			c.Request.Method, route, c.Writer.Status(), time.Since(start), c.Writer.Size(), c.ClientIP())
	}
}
