// Package display holds the controller's observer sinks. Sinks are called
// on the controller goroutine and must return promptly.
package display

import (
	"log/slog"
	"sync"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// Sink receives game state and server info updates
type Sink interface {
	StateChanged(model.Snapshot)
	InfoChanged(model.ServerInfo)
}

// Fanout forwards every update to each of its sinks in order
type Fanout struct {
	sinks []Sink
}

// NewFanout creates a Fanout over sinks, skipping nil ones
func NewFanout(sinks ...Sink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) StateChanged(s model.Snapshot) {
	for _, sink := range f.sinks {
		sink.StateChanged(s)
	}
}

func (f *Fanout) InfoChanged(i model.ServerInfo) {
	for _, sink := range f.sinks {
		sink.InfoChanged(i)
	}
}

// Latest keeps the most recent update for readers on other goroutines
type Latest struct {
	mu    sync.RWMutex
	state *model.Snapshot
	info  *model.ServerInfo
}

// NewLatest creates an empty Latest
func NewLatest() *Latest {
	return &Latest{}
}

func (l *Latest) StateChanged(s model.Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = &s
}

func (l *Latest) InfoChanged(i model.ServerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i.Scores = i.Scores.Clone()
	l.info = &i
}

// State returns the latest snapshot, if any was published
func (l *Latest) State() (model.Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state == nil {
		return model.Snapshot{}, false
	}
	return *l.state, true
}

// Info returns the latest server info, if any was published
func (l *Latest) Info() (model.ServerInfo, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.info == nil {
		return model.ServerInfo{}, false
	}
	return *l.info, true
}

// LogSink logs every update at debug level
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With(slog.String("component", "display"))}
}

func (l *LogSink) StateChanged(s model.Snapshot) {
	l.logger.Debug("state changed", slog.String("kind", s.Kind), slog.Int("size", len(s.Data)))
}

func (l *LogSink) InfoChanged(i model.ServerInfo) {
	l.logger.Debug("info changed",
		slog.Int("players", len(i.ConnectedUsers)),
		slog.String("mode", string(i.Mode)),
		slog.Duration("turn_delay", i.TurnDelay),
		slog.Duration("win_delay", i.WinDelay),
	)
}
