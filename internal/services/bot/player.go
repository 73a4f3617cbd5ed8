package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/codechallenge-go/internal/engine"
	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/protocol"
	"github.com/mcoot/codechallenge-go/internal/transport"
)

// ErrServerRejected is returned when the server answers with an error line
var ErrServerRejected = errors.New("server rejected client")

// Player plays the client side of the protocol over a Stream
type Player struct {
	Name     string
	Password string
	Strategy Strategy

	// OnGameOver is called with the reason of every finished game, if set
	OnGameOver func(reason string)

	logger *slog.Logger
}

// NewPlayer creates a Player
func NewPlayer(name, password string, strategy Strategy, logger *slog.Logger) *Player {
	return &Player{
		Name:     name,
		Password: password,
		Strategy: strategy,
		logger:   logger.With(slog.String("bot", name)),
	}
}

// Play authenticates and answers turns until the stream or ctx ends.
// A closed stream after login returns model.ErrConnectionClosed.
func (p *Player) Play(ctx context.Context, stream transport.Stream) error {
	if err := stream.WriteLine(ctx, protocol.EncodeAuth(p.Name, p.Password)); err != nil {
		return fmt.Errorf("send auth: %w", err)
	}

	for {
		line, err := stream.ReadLine(ctx)
		if err != nil {
			return err
		}
		msg, err := protocol.ParseServerMessage(line)
		if err != nil {
			return err
		}

		switch {
		case msg.Error != "":
			return fmt.Errorf("%w: %s", ErrServerRejected, msg.Error)

		case msg.GameOver != "":
			p.logger.Debug("game over", slog.String("reason", msg.GameOver))
			if p.OnGameOver != nil {
				p.OnGameOver(msg.GameOver)
			}

		case msg.YourTurn != nil:
			if err := p.answer(ctx, stream, msg); err != nil {
				return err
			}
		}
	}
}

func (p *Player) answer(ctx context.Context, stream transport.Stream, msg protocol.ServerMessage) error {
	choice, err := p.Strategy.ChooseMove(msg.YourTurn)
	if err != nil {
		return fmt.Errorf("choose move: %w", err)
	}
	move, err := engine.EncodeMove(choice)
	if err != nil {
		return err
	}
	return stream.WriteLine(ctx, move.Serialized+"\n")
}

// isClosed reports whether err means the server went away
func isClosed(err error) bool {
	return errors.Is(err, model.ErrConnectionClosed)
}
