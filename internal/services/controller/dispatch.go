package controller

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// dispatch issues turn to its player after the turn delay. Each player who
// cannot be reached is dropped and the engine's replacement turn is tried
// instead, until a turn is delivered or none remains.
func (c *Controller) dispatch(ctx context.Context, turn *model.PlayerTurn) {
	for turn != nil {
		if c.mode == model.ModeGating {
			return
		}
		if err := c.clock.Sleep(ctx, c.turnDelay); err != nil {
			return
		}

		name := turn.Token.User.Name
		if entry, ok := c.players.Lookup(name); ok {
			replies := model.NewReplyChannel()
			err := entry.Outbox.Send(ctx, model.ToPlayer{
				YourTurn: &model.YourTurn{State: turn.State, Reply: replies},
			})
			if err == nil {
				c.pending = &pendingTurn{replies: replies, turn: *turn}
				c.logger.Debug("turn issued", slog.String("player", name))
				return
			}
			if ctx.Err() != nil {
				return
			}
			c.logger.Info("dropping unreachable player", slog.String("player", name), slog.String("error", err.Error()))
			c.players.Remove(name)
		}
		turn = c.engine.CurrentPlayerDisconnected(turn.Token)
	}
	c.logger.Debug("no turn to issue")
}

func (c *Controller) handleMove(ctx context.Context, mv model.MoveMsg) {
	token := c.pending.turn.Token
	c.pending = nil

	ctx, span := c.tracer.Start(ctx, "controller.move",
		trace.WithAttributes(attribute.String("player", token.User.Name)),
	)
	defer span.End()

	res := c.engine.PlayerMoves(token, mv.Move)
	span.SetAttributes(attribute.String("outcome", res.Outcome.String()))
	c.logger.Debug("move processed",
		slog.String("player", token.User.Name),
		slog.String("outcome", res.Outcome.String()),
	)

	switch res.Outcome {
	case model.MoveOK:
		closeErrors(mv.Errors)
		if res.Next == nil {
			c.restartAfterDelay(ctx)
			return
		}
		c.dispatch(ctx, res.Next)

	case model.MoveWin:
		closeErrors(mv.Errors)
		c.gameOver(ctx, model.GameOverReason{Winner: token.User.Name})

	case model.MoveDraw:
		closeErrors(mv.Errors)
		c.gameOver(ctx, model.GameOverReason{})

	case model.MoveInvalid:
		reject(mv.Errors, model.ClientErrInvalidMove)
		c.recover(ctx, res.Next)

	case model.MoveInvalidFormat:
		reject(mv.Errors, model.ClientErrInvalidMessageFormat)
		c.recover(ctx, res.Next)
	}
}

// recover continues after an eliminating move. When the engine has no one
// left to move the game is restarted with everyone still connected.
func (c *Controller) recover(ctx context.Context, next *model.PlayerTurn) {
	if next != nil {
		c.dispatch(ctx, next)
		return
	}
	c.restartAfterDelay(ctx)
}

func (c *Controller) gameOver(ctx context.Context, reason model.GameOverReason) {
	if reason.IsDraw() {
		c.logger.Info("game drawn")
	} else {
		c.logger.Info("game won", slog.String("winner", reason.Winner))
		if c.mode.CountsScore() {
			c.scores.AddWin(reason.Winner)
		}
	}

	for _, entry := range c.players.Entries() {
		r := reason
		if err := entry.Outbox.Send(ctx, model.ToPlayer{GameOver: &r}); err != nil {
			if ctx.Err() != nil {
				return
			}
			name := entry.User.Name
			c.logger.Info("dropping unreachable player", slog.String("player", name), slog.String("error", err.Error()))
			c.players.Remove(name)
			c.engine.PlayerDisconnected(name)
		}
	}

	c.restartAfterDelay(ctx)
}

// restartAfterDelay shows the final state for the win delay, then restarts
func (c *Controller) restartAfterDelay(ctx context.Context) {
	c.publish()
	if err := c.clock.Sleep(ctx, c.winDelay); err != nil {
		return
	}
	c.restart(ctx)
}

func (c *Controller) restart(ctx context.Context) {
	c.engine.Reset(c.players.Users())
	if c.mode == model.ModeGating {
		return
	}
	c.dispatch(ctx, c.engine.TryStartGame())
}

func closeErrors(errs chan<- model.ClientError) {
	if errs != nil {
		close(errs)
	}
}

// reject reports err to the mover without waiting on them
func reject(errs chan<- model.ClientError, err model.ClientError) {
	if errs == nil {
		return
	}
	select {
	case errs <- err:
	default:
	}
	close(errs)
}
