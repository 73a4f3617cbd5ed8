// Package session bridges player connections and the controller: it
// authenticates each stream, then relays turns and moves for it.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/transport"
)

// Authorizer checks a player's credentials
type Authorizer interface {
	Authorize(ctx context.Context, username, password string) error
}

// Controller is the part of the controller client sessions use
type Controller interface {
	Connect(ctx context.Context, name string, outbox *model.Outbox) error
	Disconnect(ctx context.Context, name string, outbox *model.Outbox) error
}

// Config holds session settings
type Config struct {
	OutboxBuffer int
	AuthTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns default session settings
func DefaultConfig() Config {
	return Config{
		OutboxBuffer: 1024,
		AuthTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Server runs a handler per accepted stream
type Server struct {
	controller Controller
	auth       Authorizer
	cfg        Config
	logger     *slog.Logger
}

// New creates a session Server
func New(controller Controller, auth Authorizer, cfg Config, logger *slog.Logger) *Server {
	def := DefaultConfig()
	if cfg.OutboxBuffer <= 0 {
		cfg.OutboxBuffer = def.OutboxBuffer
	}
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = def.AuthTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	return &Server{
		controller: controller,
		auth:       auth,
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "session")),
	}
}

// Serve accepts streams from l until ctx is done, then waits for the
// handlers it started to finish. Serve may run on several listeners at once.
func (s *Server) Serve(ctx context.Context, l transport.Listener) error {
	s.logger.Info("accepting players", slog.String("addr", l.Addr()))
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		stream, err := l.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, model.ErrConnectionClosed) {
				return nil
			}
			s.logger.Error("accept failed", slog.String("addr", l.Addr()), slog.String("error", err.Error()))
			return err
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Handle(ctx, stream)
		}()
	}
}

// Handle runs one player's connection to completion and closes it
func (s *Server) Handle(ctx context.Context, stream transport.Stream) {
	defer stream.Close()
	logger := s.logger.With(slog.String("remote", stream.RemoteAddr()))

	name, err := s.authorize(ctx, stream)
	if err != nil {
		logger.Debug("authorization failed", slog.String("error", err.Error()))
		return
	}
	logger = logger.With(slog.String("player", name))

	outbox := model.NewOutbox(s.cfg.OutboxBuffer)
	if err := s.controller.Connect(ctx, name, outbox); err != nil {
		logger.Warn("failed to register with controller", slog.String("error", err.Error()))
		return
	}
	defer func() {
		outbox.Close()
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
		defer cancel()
		if err := s.controller.Disconnect(dctx, name, outbox); err != nil {
			logger.Warn("failed to report disconnect", slog.String("error", err.Error()))
		}
	}()

	h := &handler{stream: stream, outbox: outbox, writeTimeout: s.cfg.WriteTimeout}
	err = h.run(ctx)
	logger.Info("player left", slog.String("reason", err.Error()))
}
