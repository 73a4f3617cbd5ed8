package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/protocol"
	"github.com/mcoot/codechallenge-go/internal/transport"
)

// errMoveRejected ends a connection after its move was refused
var errMoveRejected = errors.New("move rejected")

func (s *Server) authorize(ctx context.Context, stream transport.Stream) (string, error) {
	actx, cancel := context.WithTimeout(ctx, s.cfg.AuthTimeout)
	defer cancel()

	line, err := stream.ReadLine(actx)
	if err != nil {
		return "", err
	}

	creds, err := protocol.ParseAuth(line)
	if err == nil {
		err = s.auth.Authorize(actx, creds.Username, creds.Password)
	}

	switch {
	case err == nil:
		return creds.Username, nil
	case errors.Is(err, model.ErrWrongPassword):
		_ = writeWithTimeout(ctx, stream, s.cfg.WriteTimeout, protocol.EncodeError(model.ClientErrWrongPassword))
	case errors.Is(err, model.ErrMalformedMessage):
		_ = writeWithTimeout(ctx, stream, s.cfg.WriteTimeout, protocol.EncodeError(model.ClientErrInvalidMessageFormat))
	}
	return "", err
}

// handler relays between one stream and its outbox
type handler struct {
	stream       transport.Stream
	outbox       *model.Outbox
	writeTimeout time.Duration

	// errs answers the last move sent, nil when nothing is awaited
	errs <-chan model.ClientError
}

// run returns why the connection ended; it never returns nil
func (h *handler) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case e, ok := <-h.errs:
			if err := h.moveAnswered(ctx, e, ok); err != nil {
				return err
			}

		case msg := <-h.outbox.Messages():
			// A verdict on the previous move takes precedence
			if err := h.pollAnswer(ctx); err != nil {
				return err
			}
			if err := h.deliver(ctx, msg); err != nil {
				return err
			}
		}
	}
}

func (h *handler) pollAnswer(ctx context.Context) error {
	if h.errs == nil {
		return nil
	}
	select {
	case e, ok := <-h.errs:
		return h.moveAnswered(ctx, e, ok)
	default:
		return nil
	}
}

// moveAnswered handles the controller's verdict: a closed channel means
// the move was accepted
func (h *handler) moveAnswered(ctx context.Context, e model.ClientError, ok bool) error {
	h.errs = nil
	if !ok {
		return nil
	}
	_ = h.write(ctx, protocol.EncodeError(e))
	return fmt.Errorf("%w: %s", errMoveRejected, e)
}

func (h *handler) deliver(ctx context.Context, msg model.ToPlayer) error {
	switch {
	case msg.GameOver != nil:
		return h.write(ctx, protocol.EncodeGameOver(*msg.GameOver))
	case msg.YourTurn != nil:
		return h.takeTurn(ctx, msg.YourTurn)
	}
	return nil
}

// takeTurn shows the state, reads one move and hands it to the controller.
// The reply channel is always closed so a failed turn reads as dropped.
func (h *handler) takeTurn(ctx context.Context, turn *model.YourTurn) error {
	defer close(turn.Reply)

	if err := h.write(ctx, turn.State.Serialized); err != nil {
		return err
	}
	line, err := h.stream.ReadLine(ctx)
	if err != nil {
		return err
	}

	errs := model.NewErrorChannel()
	turn.Reply <- model.MoveMsg{
		Move:   model.PlayerMove{Serialized: line},
		Errors: errs,
	}
	h.errs = errs
	return nil
}

func (h *handler) write(ctx context.Context, line string) error {
	return writeWithTimeout(ctx, h.stream, h.writeTimeout, line)
}

func writeWithTimeout(ctx context.Context, stream transport.Stream, timeout time.Duration, line string) error {
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return stream.WriteLine(wctx, line)
}
