package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/codechallenge-go/internal/config"
	"github.com/mcoot/codechallenge-go/internal/factory"
	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/telemetry"
	"github.com/mcoot/codechallenge-go/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		if errors.Is(err, model.ErrControlChannelClosed) {
			logger.Error("controller lost its control channel", slog.String("error", err.Error()))
		} else {
			logger.Error("server failed", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg config.Config, logger *slog.Logger) error {
	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	app, err := factory.New(cfg, factory.Options{Logger: logger, Tracer: tp})
	if err != nil {
		return err
	}
	defer app.Close()

	tcp, err := transport.ListenTCP(cfg.TCPAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.TCPAddr, err)
	}
	httpLn, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = tcp.Close()
		return fmt.Errorf("listen %s: %w", cfg.HTTPAddr, err)
	}

	logger.Info("server started",
		slog.String("game", cfg.Game),
		slog.String("players_addr", tcp.Addr()),
		slog.String("http_addr", httpLn.Addr().String()),
		slog.Int("bots", cfg.Bots),
		slog.Bool("redis", cfg.RedisURL != ""),
	)

	return app.Run(ctx, tcp, httpLn)
}
