// Package handler serves the dashboard pages and forms.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/codechallenge-go/internal/display"
	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/web/components"
	"github.com/mcoot/codechallenge-go/internal/web/middleware"
	"github.com/mcoot/codechallenge-go/internal/web/sse"
)

// Settings is the part of the controller client settings forms use
type Settings interface {
	SetMode(ctx context.Context, mode model.GameMode) error
	SetTurnDelay(ctx context.Context, d time.Duration) error
	SetWinDelay(ctx context.Context, d time.Duration) error
	Reset(ctx context.Context) error
}

// DashboardHandler serves the dashboard, its event stream and settings
type DashboardHandler struct {
	latest      *display.Latest
	settings    Settings
	hub         *sse.Hub
	broadcaster *sse.Broadcaster
	logger      *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler
func NewDashboardHandler(latest *display.Latest, settings Settings, hub *sse.Hub, broadcaster *sse.Broadcaster, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		latest:      latest,
		settings:    settings,
		hub:         hub,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Dashboard renders the dashboard page
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := components.DashboardData{}
	data.Info, data.HasInfo = h.latest.Info()
	data.State, data.HasState = h.latest.State()
	if flash := middleware.GetFlash(r.Context()); flash != nil {
		data.Flash = flash.Message
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Dashboard(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render dashboard", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Events streams panel updates, starting with the current ones
func (h *DashboardHandler) Events(w http.ResponseWriter, r *http.Request) {
	sse.ServeSSE(w, r, h.hub, h.broadcaster.Initial(r.Context(), h.latest)...)
}

// UpdateSettings applies the settings form and redirects to the dashboard
func (h *DashboardHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.applySettings(r); err != nil {
		middleware.SetFlash(w, "error", err.Error())
	} else {
		middleware.SetFlash(w, "success", "settings updated")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *DashboardHandler) applySettings(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}
	ctx := r.Context()

	if v := r.PostFormValue("mode"); v != "" {
		mode, err := model.ParseGameMode(v)
		if err != nil {
			return err
		}
		if err := h.settings.SetMode(ctx, mode); err != nil {
			return err
		}
	}
	if v := r.PostFormValue("turn_delay"); v != "" {
		d, err := ParseDelay(v)
		if err != nil {
			return err
		}
		if err := h.settings.SetTurnDelay(ctx, d); err != nil {
			return err
		}
	}
	if v := r.PostFormValue("win_delay"); v != "" {
		d, err := ParseDelay(v)
		if err != nil {
			return err
		}
		if err := h.settings.SetWinDelay(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// Reset restarts the game and redirects to the dashboard
func (h *DashboardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.settings.Reset(r.Context()); err != nil {
		middleware.SetFlash(w, "error", err.Error())
	} else {
		middleware.SetFlash(w, "success", "game reset")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ParseDelay parses a non-negative Go duration such as "250ms"
func ParseDelay(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("delay %q is negative", s)
	}
	return d, nil
}
