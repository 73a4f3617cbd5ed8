// Package factory wires the server's components together.
package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/mcoot/codechallenge-go/internal/api"
	"github.com/mcoot/codechallenge-go/internal/config"
	"github.com/mcoot/codechallenge-go/internal/dependencies/clock"
	"github.com/mcoot/codechallenge-go/internal/dependencies/random"
	"github.com/mcoot/codechallenge-go/internal/display"
	"github.com/mcoot/codechallenge-go/internal/engine"
	"github.com/mcoot/codechallenge-go/internal/engine/counter"
	"github.com/mcoot/codechallenge-go/internal/engine/gomoku"
	"github.com/mcoot/codechallenge-go/internal/services/auth"
	"github.com/mcoot/codechallenge-go/internal/services/bot"
	"github.com/mcoot/codechallenge-go/internal/services/controller"
	"github.com/mcoot/codechallenge-go/internal/services/players"
	"github.com/mcoot/codechallenge-go/internal/services/session"
	"github.com/mcoot/codechallenge-go/internal/storage"
	"github.com/mcoot/codechallenge-go/internal/storage/memory"
	redisstorage "github.com/mcoot/codechallenge-go/internal/storage/redis"
	"github.com/mcoot/codechallenge-go/internal/transport"
	"github.com/mcoot/codechallenge-go/internal/web"
	"github.com/mcoot/codechallenge-go/internal/web/sse"
)

// TracerName names the controller's tracer
const TracerName = "github.com/mcoot/codechallenge-go/internal/services/controller"

// App contains all wired application components
type App struct {
	Config config.Config
	Logger *slog.Logger

	// Storage
	Credentials storage.Credentials
	States      storage.StateStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Engines    *engine.Registry
	Auth       *auth.Service
	Players    *players.Registry
	Controller *controller.Controller
	Control    chan controller.Msg
	Client     *controller.Client
	Sessions   *session.Server
	Bots       *bot.Service

	// Display
	Latest   *display.Latest
	Recorder *display.Recorder
	WebHub   *sse.Hub
	APIHub   *sse.Hub

	// WebSockets accepts players upgraded on /ws
	WebSockets *transport.WebSocketListener
	// Handler serves the dashboard, the JSON API and /ws
	Handler http.Handler

	closers []io.Closer
}

// Options holds the dependencies New builds when left nil
type Options struct {
	Logger *slog.Logger
	Clock  clock.Clock
	Random random.Random
	Tracer trace.TracerProvider

	// States overrides the state store chosen from the config
	States storage.StateStore
}

// Engines returns the registry of games the server can run
func Engines() *engine.Registry {
	r := engine.NewRegistry()
	r.Register(gomoku.Kind, gomoku.NewEngine)
	r.Register(counter.Kind, counter.NewEngine)
	return r
}

// New creates a new application with all dependencies wired
func New(cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	rnd := opts.Random
	if rnd == nil {
		rnd = random.New()
	}
	tp := opts.Tracer
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	app := &App{
		Config:      cfg,
		Logger:      logger,
		Credentials: memory.New(),
		Clock:       clk,
		Random:      rnd,
		Engines:     Engines(),
	}

	// Create state store based on config
	switch {
	case opts.States != nil:
		app.States = opts.States
	case cfg.RedisURL != "":
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		store, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		app.States = store
		app.closers = append(app.closers, store)
	default:
		app.States = memory.New()
	}

	eng, err := app.Engines.New(cfg.Game, engine.Options{Width: cfg.BoardWidth, Height: cfg.BoardHeight})
	if err != nil {
		app.Close()
		return nil, err
	}
	strategy, err := bot.StrategyFor(cfg.Game, rnd)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Latest = display.NewLatest()
	app.Recorder = display.NewRecorder(app.States, display.DefaultRecorderQueue, logger)
	app.WebHub = sse.NewHub("dashboard", logger)
	app.APIHub = sse.NewHub("api", logger)
	webBroadcaster := sse.NewBroadcaster(app.WebHub, sse.HTMLRenderer{}, logger)
	apiBroadcaster := sse.NewBroadcaster(app.APIHub, sse.JSONRenderer{}, logger)

	observer := display.NewFanout(
		app.Latest,
		display.NewLogSink(logger),
		app.Recorder,
		webBroadcaster,
		apiBroadcaster,
	)

	app.Players = players.New(logger)
	app.Controller = controller.New(
		eng,
		app.Players,
		controller.Settings{Mode: cfg.Mode, TurnDelay: cfg.TurnDelay, WinDelay: cfg.WinDelay},
		clk,
		observer,
		tp.Tracer(TracerName),
		logger.With(slog.String("component", "controller")),
	)
	app.Control = controller.NewChannel(cfg.ControlBuffer)
	app.Client = controller.NewClient(app.Control)

	app.Auth = auth.New(app.Credentials, clk, auth.Config{BcryptCost: cfg.BcryptCost}, logger)
	sessionCfg := session.DefaultConfig()
	sessionCfg.OutboxBuffer = cfg.OutboxBuffer
	app.Sessions = session.New(app.Client, app.Auth, sessionCfg, logger)

	app.Bots = bot.NewService(app.Sessions, strategy, clk, rnd,
		bot.Config{Count: cfg.Bots, RetryDelay: cfg.BotRetry}, logger)

	app.WebSockets = transport.NewWebSocketListener(cfg.HTTPAddr + "/ws")

	root := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Store:       app.States,
		Controller:  app.Client,
		Hub:         app.APIHub,
		Broadcaster: apiBroadcaster,
		Latest:      app.Latest,
		AdminToken:  cfg.AdminToken,
		Players:     app.WebSockets,
	}, mux.NewRouter())
	root.PathPrefix("/").Handler(web.NewRouter(web.RouterConfig{
		Logger:      logger,
		Latest:      app.Latest,
		Settings:    app.Client,
		Hub:         app.WebHub,
		Broadcaster: webBroadcaster,
	}))
	app.Handler = root

	return app, nil
}

// Run serves players on tcp and HTTP on httpLn until ctx is done or a
// component fails. A closed control channel is returned as
// model.ErrControlChannelClosed.
func (a *App) Run(ctx context.Context, tcp transport.Listener, httpLn net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.Controller.Run(ctx, a.Control) })
	g.Go(func() error { return a.Recorder.Run(ctx) })

	for _, hub := range []*sse.Hub{a.WebHub, a.APIHub} {
		g.Go(func() error {
			hub.Run()
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		a.WebHub.Close()
		a.APIHub.Close()
		_ = a.WebSockets.Close()
		return nil
	})

	g.Go(func() error { return a.Sessions.Serve(ctx, tcp) })
	g.Go(func() error { return a.Sessions.Serve(ctx, a.WebSockets) })
	g.Go(func() error { return a.Bots.Run(ctx) })

	server := api.NewServer(a.Handler, api.ServerConfig{
		Addr:              httpLn.Addr().String(),
		ReadHeaderTimeout: api.DefaultServerConfig().ReadHeaderTimeout,
		ShutdownTimeout:   api.DefaultServerConfig().ShutdownTimeout,
	}, a.Logger)
	g.Go(func() error { return server.Serve(ctx, httpLn) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close releases external connections
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.Logger.Warn("close failed", slog.String("error", err.Error()))
		}
	}
	a.closers = nil
}
