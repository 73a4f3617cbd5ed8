package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mcoot/codechallenge-go/internal/api/apierr"
	"github.com/mcoot/codechallenge-go/internal/api/request"
	"github.com/mcoot/codechallenge-go/internal/api/response"
	"github.com/mcoot/codechallenge-go/internal/model"
)

// controlTimeout bounds how long a request waits on a full control channel
const controlTimeout = 5 * time.Second

// Controller is the part of the controller client the API drives
type Controller interface {
	SetMode(ctx context.Context, mode model.GameMode) error
	SetTurnDelay(ctx context.Context, d time.Duration) error
	SetWinDelay(ctx context.Context, d time.Duration) error
	Reset(ctx context.Context) error
}

// ControlHandler turns admin requests into control events
type ControlHandler struct {
	controller Controller
}

// NewControlHandler creates a ControlHandler
func NewControlHandler(controller Controller) *ControlHandler {
	return &ControlHandler{controller: controller}
}

// SetMode handles PUT /api/v1/mode
func (h *ControlHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req request.SetModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}
	mode, err := model.ParseGameMode(req.Mode)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), controlTimeout)
	defer cancel()
	if err := h.controller.SetMode(ctx, mode); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// SetDelays handles PUT /api/v1/delays
func (h *ControlHandler) SetDelays(w http.ResponseWriter, r *http.Request) {
	var req request.SetDelaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.TurnDelay == nil && req.WinDelay == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("turn_delay or win_delay is required"))
		return
	}

	turn, err := parseDelay(req.TurnDelay)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	win, err := parseDelay(req.WinDelay)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), controlTimeout)
	defer cancel()
	if turn != nil {
		if err := h.controller.SetTurnDelay(ctx, *turn); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}
	if win != nil {
		if err := h.controller.SetWinDelay(ctx, *win); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}
	response.NoContent(w)
}

// Reset handles POST /api/v1/reset
func (h *ControlHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), controlTimeout)
	defer cancel()
	if err := h.controller.Reset(ctx); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

func parseDelay(s *string) (*time.Duration, error) {
	if s == nil {
		return nil, nil
	}
	d, err := time.ParseDuration(*s)
	if err != nil {
		return nil, apierr.NewInvalidRequestError("Invalid delay " + *s)
	}
	if d < 0 {
		return nil, apierr.NewInvalidRequestError("Delay must not be negative")
	}
	return &d, nil
}
