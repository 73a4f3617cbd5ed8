// Package handler implements the JSON admin API.
package handler

import (
	"net/http"

	"github.com/mcoot/codechallenge-go/internal/api/apierr"
	"github.com/mcoot/codechallenge-go/internal/api/response"
	"github.com/mcoot/codechallenge-go/internal/storage"
)

// StateHandler serves the last published state from a StateStore
type StateHandler struct {
	store storage.StateStore
}

// NewStateHandler creates a StateHandler
func NewStateHandler(store storage.StateStore) *StateHandler {
	return &StateHandler{store: store}
}

// GetState handles GET /api/v1/state
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.GetSnapshot(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StateFromModel(*snap))
}

// GetInfo handles GET /api/v1/info
func (h *StateHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.store.GetServerInfo(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.InfoFromModel(*info))
}

// Health handles GET /api/v1/health
func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
