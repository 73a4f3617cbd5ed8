package factory

import (
	"context"
	"net"
	"time"

	"github.com/mcoot/codechallenge-go/internal/config"
	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/transport"
)

// TestConfig returns a config on loopback ephemeral ports with fast pacing
func TestConfig() config.Config {
	return config.Config{
		TCPAddr:       "127.0.0.1:0",
		HTTPAddr:      "127.0.0.1:0",
		Game:          "gomoku",
		BoardWidth:    5,
		BoardHeight:   5,
		Mode:          model.ModePractice,
		TurnDelay:     time.Millisecond,
		WinDelay:      time.Millisecond,
		ControlBuffer: 1024,
		OutboxBuffer:  1024,
		BotRetry:      10 * time.Millisecond,
		BcryptCost:    4,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// TestApp is an App running in the background on real listeners
type TestApp struct {
	*App

	// HTTPURL is the base URL of the dashboard and API
	HTTPURL string
	// PlayerAddr is the TCP player port
	PlayerAddr string
	// WebSocketURL is the WebSocket player endpoint
	WebSocketURL string

	cancel context.CancelFunc
	done   chan error
}

// StartTestApp builds an App from cfg and runs it until Stop
func StartTestApp(cfg config.Config, opts Options) (*TestApp, error) {
	app, err := New(cfg, opts)
	if err != nil {
		return nil, err
	}

	tcp, err := transport.ListenTCP(cfg.TCPAddr)
	if err != nil {
		app.Close()
		return nil, err
	}
	httpLn, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = tcp.Close()
		app.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &TestApp{
		App:          app,
		HTTPURL:      "http://" + httpLn.Addr().String(),
		PlayerAddr:   tcp.Addr(),
		WebSocketURL: "ws://" + httpLn.Addr().String() + "/ws",
		cancel:       cancel,
		done:         make(chan error, 1),
	}
	go func() {
		t.done <- app.Run(ctx, tcp, httpLn)
	}()
	return t, nil
}

// Stop cancels the app and returns what Run returned
func (t *TestApp) Stop() error {
	t.cancel()
	err := <-t.done
	t.Close()
	return err
}
