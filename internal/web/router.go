package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/codechallenge-go/internal/display"
	"github.com/mcoot/codechallenge-go/internal/web/handler"
	"github.com/mcoot/codechallenge-go/internal/web/middleware"
	"github.com/mcoot/codechallenge-go/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	Latest      *display.Latest
	Settings    handler.Settings
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster
}

// NewRouter creates the dashboard router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Flash())

	dashboard := handler.NewDashboardHandler(cfg.Latest, cfg.Settings, cfg.Hub, cfg.Broadcaster, cfg.Logger)

	r.HandleFunc("/", dashboard.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/events", dashboard.Events).Methods(http.MethodGet)
	r.HandleFunc("/settings", dashboard.UpdateSettings).Methods(http.MethodPost)
	r.HandleFunc("/reset", dashboard.Reset).Methods(http.MethodPost)

	return r
}
