// Package controller runs the authoritative game loop. A single goroutine
// owns the rule engine and the player registry; everything else talks to
// it through the control channel and the per-turn reply channels.
package controller

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mcoot/codechallenge-go/internal/dependencies/clock"
	"github.com/mcoot/codechallenge-go/internal/engine"
	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/services/players"
)

// Settings are the tunables the controller starts with
type Settings struct {
	Mode      model.GameMode
	TurnDelay time.Duration
	WinDelay  time.Duration
}

// DefaultSettings returns practice mode with the standard pacing
func DefaultSettings() Settings {
	return Settings{
		Mode:      model.ModePractice,
		TurnDelay: 200 * time.Millisecond,
		WinDelay:  500 * time.Millisecond,
	}
}

// pendingTurn is the one turn currently on the clock
type pendingTurn struct {
	replies <-chan model.MoveMsg // nil once the handler dropped it
	turn    model.PlayerTurn
}

// Controller reconciles control events and move replies into game state
type Controller struct {
	engine   engine.Engine
	players  *players.Registry
	clock    clock.Clock
	observer Observer
	tracer   trace.Tracer
	logger   *slog.Logger

	mode      model.GameMode
	scores    model.ScoreTable
	turnDelay time.Duration
	winDelay  time.Duration

	pending  *pendingTurn
	lastSent *model.Snapshot
}

// New creates a controller around eng. A nil observer discards updates
// and a nil tracer records nothing.
func New(
	eng engine.Engine,
	registry *players.Registry,
	settings Settings,
	clock clock.Clock,
	observer Observer,
	tracer trace.Tracer,
	logger *slog.Logger,
) *Controller {
	if observer == nil {
		observer = NopObserver{}
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &Controller{
		engine:    eng,
		players:   registry,
		clock:     clock,
		observer:  observer,
		tracer:    tracer,
		logger:    logger,
		mode:      settings.Mode,
		scores:    make(model.ScoreTable),
		turnDelay: settings.TurnDelay,
		winDelay:  settings.WinDelay,
	}
}

// Run processes events until ctx is done or msgs is closed. A closed
// control channel is fatal and reported as model.ErrControlChannelClosed.
func (c *Controller) Run(ctx context.Context, msgs <-chan Msg) error {
	c.logger.Info("controller started",
		slog.String("mode", string(c.mode)),
		slog.Duration("turn_delay", c.turnDelay),
		slog.Duration("win_delay", c.winDelay),
	)
	c.publish()

	for {
		var replies <-chan model.MoveMsg
		if c.pending != nil {
			replies = c.pending.replies
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-msgs:
			if !ok {
				c.logger.Error("control channel closed")
				return model.ErrControlChannelClosed
			}
			c.handle(ctx, msg)

		case mv, ok := <-replies:
			if !ok {
				c.moveDropped()
			} else {
				c.handleMove(ctx, mv)
			}
		}

		c.publish()
	}
}

func (c *Controller) handle(ctx context.Context, msg Msg) {
	ctx, span := c.tracer.Start(ctx, "controller."+msg.name())
	defer span.End()

	switch m := msg.(type) {
	case Connect:
		span.SetAttributes(attribute.String("player", m.Name))
		c.connect(ctx, m)
	case Disconnect:
		span.SetAttributes(attribute.String("player", m.Name))
		c.disconnect(ctx, m)
	case ModeChange:
		span.SetAttributes(attribute.String("mode", string(m.Mode)))
		c.changeMode(ctx, m.Mode)
	case SetTurnDelay:
		c.turnDelay = m.Delay
		c.logger.Info("turn delay changed", slog.Duration("delay", m.Delay))
	case SetWinDelay:
		c.winDelay = m.Delay
		c.logger.Info("win delay changed", slog.Duration("delay", m.Delay))
	case ResetGame:
		c.logger.Info("game reset requested")
		c.pending = nil
		c.restart(ctx)
	default:
		c.logger.Warn("unknown control message", slog.String("type", msg.name()))
	}
}

func (c *Controller) connect(ctx context.Context, m Connect) {
	entry := c.players.Add(m.Name, m.Outbox)
	c.engine.PlayerConnected(entry.User)
	c.logger.Info("player connected",
		slog.String("player", m.Name),
		slog.Int("player_count", c.players.Len()),
	)

	if c.pending != nil {
		// A reconnect takes over the turn held by the old connection
		if c.pending.turn.Token.User.Name == m.Name {
			turn := c.pending.turn
			c.pending = nil
			c.dispatch(ctx, &turn)
		}
		return
	}
	if c.mode == model.ModeGating {
		return
	}
	c.dispatch(ctx, c.engine.TryStartGame())
}

func (c *Controller) disconnect(ctx context.Context, m Disconnect) {
	entry, ok := c.players.Lookup(m.Name)
	if !ok {
		return
	}
	if m.Outbox != nil && entry.Outbox != m.Outbox {
		c.logger.Debug("ignoring disconnect from replaced connection", slog.String("player", m.Name))
		return
	}

	c.players.Remove(m.Name)
	c.logger.Info("player disconnected",
		slog.String("player", m.Name),
		slog.Int("player_count", c.players.Len()),
	)

	if c.pending != nil && c.pending.turn.Token.User.Name == m.Name {
		token := c.pending.turn.Token
		c.pending = nil
		c.dispatch(ctx, c.engine.CurrentPlayerDisconnected(token))
		return
	}
	c.engine.PlayerDisconnected(m.Name)
}

func (c *Controller) changeMode(ctx context.Context, mode model.GameMode) {
	old := c.mode
	if old == mode {
		return
	}
	c.mode = mode
	c.logger.Info("mode changed", slog.String("from", string(old)), slog.String("to", string(mode)))

	switch {
	case mode == model.ModeGating:
		c.scores = make(model.ScoreTable)
		c.engine.Reset(c.players.Users())
		c.pending = nil
	case old == model.ModeGating && c.pending == nil:
		c.dispatch(ctx, c.engine.TryStartGame())
	}
}

// moveDropped keeps the turn assigned; the matching Disconnect clears it
func (c *Controller) moveDropped() {
	c.logger.Debug("move channel dropped", slog.String("player", c.pending.turn.Token.User.Name))
	c.pending.replies = nil
}

// publish sends the engine snapshot when it changed, and the server info
func (c *Controller) publish() {
	snap := c.engine.Snapshot()
	if c.lastSent == nil || !c.lastSent.Equal(snap) {
		c.observer.StateChanged(snap)
		c.lastSent = &snap
	}
	c.observer.InfoChanged(c.info())
}

func (c *Controller) info() model.ServerInfo {
	return model.ServerInfo{
		ConnectedUsers: c.players.Users(),
		Mode:           c.mode,
		Scores:         c.scores.Clone(),
		TurnDelay:      c.turnDelay,
		WinDelay:       c.winDelay,
	}
}
