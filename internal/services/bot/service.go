// Package bot provides move strategies and the client-side players that use
// them, both for in-process bots and for the ccgame play command.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/mcoot/codechallenge-go/internal/dependencies/clock"
	"github.com/mcoot/codechallenge-go/internal/dependencies/random"
	"github.com/mcoot/codechallenge-go/internal/transport"
)

const (
	// PasswordLength is the length of generated bot passwords
	PasswordLength = 16
	// NamePrefix prefixes in-process bot names
	NamePrefix = "bot-"
)

// SessionHandler runs the server side of one connection
type SessionHandler interface {
	Handle(ctx context.Context, stream transport.Stream)
}

// Config holds in-process bot settings
type Config struct {
	Count      int
	RetryDelay time.Duration
}

// DefaultConfig returns default bot settings
func DefaultConfig() Config {
	return Config{Count: 0, RetryDelay: time.Second}
}

// Service runs in-process bots. Each bot talks to the session layer over
// an in-memory pipe, so it goes through the same auth and relay as a
// remote player.
type Service struct {
	sessions SessionHandler
	strategy Strategy
	clock    clock.Clock
	random   random.Random
	cfg      Config
	logger   *slog.Logger
}

// NewService creates a bot Service
func NewService(
	sessions SessionHandler,
	strategy Strategy,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		sessions: sessions,
		strategy: strategy,
		clock:    clk,
		random:   rnd,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "bot-service")),
	}
}

// Name returns the name of the i-th bot
func Name(i int) string {
	return fmt.Sprintf("%s%d", NamePrefix, i)
}

// Run plays cfg.Count bots until ctx is done
func (s *Service) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i := range s.cfg.Count {
		name := Name(i)
		password := s.random.String(PasswordLength, random.Alphanumeric)
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.runBot(ctx, NewPlayer(name, password, s.strategy, s.logger))
		}()
	}
	if s.cfg.Count > 0 {
		s.logger.Info("bots started", slog.Int("count", s.cfg.Count))
	}
	wg.Wait()
	return ctx.Err()
}

// runBot reconnects the bot whenever its connection ends
func (s *Service) runBot(ctx context.Context, p *Player) {
	for {
		err := s.PlayOnce(ctx, p)
		if ctx.Err() != nil {
			return
		}
		level := slog.LevelWarn
		if isClosed(err) {
			level = slog.LevelDebug
		}
		s.logger.Log(ctx, level, "bot disconnected", slog.String("bot", p.Name), slog.String("error", err.Error()))

		if err := s.clock.Sleep(ctx, s.cfg.RetryDelay); err != nil {
			return
		}
	}
}

// PlayOnce runs one connection of p against the session layer
func (s *Service) PlayOnce(ctx context.Context, p *Player) error {
	serverEnd, clientEnd := net.Pipe()
	client := transport.NewConnStream(clientEnd)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.sessions.Handle(ctx, transport.NewConnStream(serverEnd))
	}()

	err := p.Play(ctx, client)
	_ = client.Close()
	<-done
	return err
}
