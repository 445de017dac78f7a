package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func (h *handlerImpl) HandleRequestLogger(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path

	c.Next()

	status := c.Writer.Status()
	var event *zerolog.Event
	switch {
	case status >= http.StatusInternalServerError:
		event = h.logger.Error()
	case status >= http.StatusBadRequest:
		event = h.logger.Warn()
	default:
		event = h.logger.Info()
	}

	event.
		Str("method", c.Request.Method).
		Str("path", path).
		Int("status", status).
		Int("size", c.Writer.Size()).
		Dur("latency", time.Since(start)).
		Str("client_ip", c.ClientIP()).
		Msg("handled request")
}

// HandleNoRoute answers unmatched paths and verbs with an empty 404.
func (h *handlerImpl) HandleNoRoute(c *gin.Context) {
	h.logger.Debug().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("no route matched")
	c.AbortWithStatus(http.StatusNotFound)
}
