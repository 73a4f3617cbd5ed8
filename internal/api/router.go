package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/codechallenge-go/internal/api/handler"
	apimw "github.com/mcoot/codechallenge-go/internal/api/middleware"
	"github.com/mcoot/codechallenge-go/internal/middleware"
	"github.com/mcoot/codechallenge-go/internal/storage"
	"github.com/mcoot/codechallenge-go/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Store       storage.StateStore
	Controller  handler.Controller
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster
	Latest      sse.Latest
	AdminToken  string

	// Players is mounted at /ws when set
	Players http.Handler
}

// NewRouter creates the API router. Routes are registered on r when it is
// not nil so the API can share a router with the dashboard.
func NewRouter(cfg RouterConfig, r *mux.Router) *mux.Router {
	if r == nil {
		r = mux.NewRouter()
	}

	stateHandler := handler.NewStateHandler(cfg.Store)
	controlHandler := handler.NewControlHandler(cfg.Controller)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimw.Recovery(cfg.Logger))

	// Event stream is long-lived, keep it out of the request log
	if cfg.Hub != nil {
		eventsHandler := handler.NewEventsHandler(cfg.Hub, cfg.Broadcaster, cfg.Latest)
		api.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)
	}

	logged := api.NewRoute().Subrouter()
	logged.Use(middleware.Logging(cfg.Logger))
	logged.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	logged.HandleFunc("/state", stateHandler.GetState).Methods(http.MethodGet)
	logged.HandleFunc("/info", stateHandler.GetInfo).Methods(http.MethodGet)

	admin := logged.NewRoute().Subrouter()
	admin.Use(apimw.AdminAuth(cfg.AdminToken))
	admin.HandleFunc("/mode", controlHandler.SetMode).Methods(http.MethodPut)
	admin.HandleFunc("/delays", controlHandler.SetDelays).Methods(http.MethodPut)
	admin.HandleFunc("/reset", controlHandler.Reset).Methods(http.MethodPost)

	if cfg.Players != nil {
		r.Handle("/ws", cfg.Players)
	}

	return r
}
