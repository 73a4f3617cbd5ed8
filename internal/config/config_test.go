package config

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/codechallenge-go/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7654", cfg.TCPAddr)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "gomoku", cfg.Game)
	assert.Equal(t, 20, cfg.BoardWidth)
	assert.Equal(t, 20, cfg.BoardHeight)
	assert.Equal(t, model.ModePractice, cfg.Mode)
	assert.Equal(t, 200*time.Millisecond, cfg.TurnDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.WinDelay)
	assert.Equal(t, 1024, cfg.ControlBuffer)
	assert.Equal(t, 1024, cfg.OutboxBuffer)
	assert.Empty(t, cfg.RedisURL)
	assert.Zero(t, cfg.Bots)
	assert.Empty(t, cfg.OTelEndpoint)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CCGAME_GAME", "counter")
	t.Setenv("CCGAME_MODE", "Competition")
	t.Setenv("CCGAME_TURN_DELAY", "1s")
	t.Setenv("CCGAME_BOTS", "3")
	t.Setenv("CCGAME_REDIS_URL", "redis://cache:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "counter", cfg.Game)
	assert.Equal(t, model.ModeCompetition, cfg.Mode)
	assert.Equal(t, time.Second, cfg.TurnDelay)
	assert.Equal(t, 3, cfg.Bots)
	assert.Equal(t, "redis://cache:6379", cfg.RedisURL)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "CCGAME_TURN_DELAY", "soon"},
		{"bad int", "CCGAME_BOTS", "many"},
		{"unknown mode", "CCGAME_MODE", "chaos"},
		{"negative delay", "CCGAME_WIN_DELAY", "-1s"},
		{"empty board", "CCGAME_BOARD_WIDTH", "0"},
		{"zero buffer", "CCGAME_CONTROL_BUFFER", "0"},
		{"negative bots", "CCGAME_BOTS", "-1"},
		{"unknown level", "CCGAME_LOG_LEVEL", "loud"},
		{"unknown format", "CCGAME_LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestNewLoggerHonoursLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])

	buf.Reset()
	cfg = Config{LogLevel: "debug", LogFormat: "text"}
	cfg.NewLogger(&buf).Debug("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
