package handler

import (
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/finchboard/tickerlane/internal/events"
)

// StreamHandler exposes the lifecycle event bus as a server-sent event
// stream so a rendering client can follow dispatches, lane frees, expiries
// and activations live.
type StreamHandler struct {
	bus *events.Bus
}

func NewStreamHandler(bus *events.Bus) *StreamHandler {
	return &StreamHandler{bus: bus}
}

func (h *StreamHandler) HandleStream(c *gin.Context) {
	ctx := c.Request.Context()

	sub := h.bus.Subscribe(events.AllTypes()...)
	defer h.bus.Unsubscribe(sub)

	slog.InfoContext(ctx, "event stream opened",
		slog.String("remote", c.ClientIP()),
	)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-sub:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Type), ev.Payload)
			return true
		case <-ctx.Done():
			return false
		}
	})

	slog.InfoContext(ctx, "event stream closed",
		slog.String("remote", c.ClientIP()),
	)
}
