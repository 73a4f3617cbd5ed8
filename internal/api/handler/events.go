package handler

import (
	"net/http"

	"github.com/mcoot/codechallenge-go/internal/web/sse"
)

// EventsHandler streams observer updates as JSON server-sent events
type EventsHandler struct {
	hub         *sse.Hub
	broadcaster *sse.Broadcaster
	latest      sse.Latest
}

// NewEventsHandler creates an EventsHandler
func NewEventsHandler(hub *sse.Hub, broadcaster *sse.Broadcaster, latest sse.Latest) *EventsHandler {
	return &EventsHandler{hub: hub, broadcaster: broadcaster, latest: latest}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sse.ServeSSE(w, r, h.hub, h.broadcaster.Initial(r.Context(), h.latest)...)
}
