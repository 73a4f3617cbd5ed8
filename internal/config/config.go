// Package config loads server settings from CCGAME_* environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// Config is the full server configuration
type Config struct {
	TCPAddr  string `env:"CCGAME_TCP_ADDR" envDefault:"127.0.0.1:7654"`
	HTTPAddr string `env:"CCGAME_HTTP_ADDR" envDefault:":8080"`

	Game        string         `env:"CCGAME_GAME" envDefault:"gomoku"`
	BoardWidth  int            `env:"CCGAME_BOARD_WIDTH" envDefault:"20"`
	BoardHeight int            `env:"CCGAME_BOARD_HEIGHT" envDefault:"20"`
	Mode        model.GameMode `env:"CCGAME_MODE" envDefault:"practice"`
	TurnDelay   time.Duration  `env:"CCGAME_TURN_DELAY" envDefault:"200ms"`
	WinDelay    time.Duration  `env:"CCGAME_WIN_DELAY" envDefault:"500ms"`

	ControlBuffer int `env:"CCGAME_CONTROL_BUFFER" envDefault:"1024"`
	OutboxBuffer  int `env:"CCGAME_OUTBOX_BUFFER" envDefault:"1024"`

	// RedisURL enables the Redis state store when set
	RedisURL string `env:"CCGAME_REDIS_URL"`

	Bots       int           `env:"CCGAME_BOTS" envDefault:"0"`
	BotRetry   time.Duration `env:"CCGAME_BOT_RETRY" envDefault:"1s"`
	BcryptCost int           `env:"CCGAME_BCRYPT_COST" envDefault:"10"`

	// AdminToken protects the mutating API routes; empty leaves them open
	AdminToken string `env:"CCGAME_ADMIN_TOKEN"`

	LogLevel  string `env:"CCGAME_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"CCGAME_LOG_FORMAT" envDefault:"json"`

	// OTelEndpoint enables OTLP/HTTP trace export when set
	OTelEndpoint string `env:"CCGAME_OTEL_ENDPOINT"`
}

// Load parses the environment and validates the result
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot
func (c *Config) Validate() error {
	mode, err := model.ParseGameMode(string(c.Mode))
	if err != nil {
		return fmt.Errorf("CCGAME_MODE: %w", err)
	}
	c.Mode = mode

	if c.BoardWidth <= 0 || c.BoardHeight <= 0 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", c.BoardWidth, c.BoardHeight)
	}
	if c.TurnDelay < 0 || c.WinDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.ControlBuffer <= 0 || c.OutboxBuffer <= 0 {
		return fmt.Errorf("channel buffers must be positive")
	}
	if c.Bots < 0 {
		return fmt.Errorf("CCGAME_BOTS must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// NewLogger builds the process logger from the log settings
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
