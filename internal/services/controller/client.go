package controller

import (
	"context"
	"time"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// Client sends control events to a running controller
type Client struct {
	msgs chan<- Msg
}

// NewClient wraps the producer side of a control channel
func NewClient(msgs chan<- Msg) *Client {
	return &Client{msgs: msgs}
}

func (c *Client) send(ctx context.Context, msg Msg) error {
	select {
	case c.msgs <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Connect registers name with the outbox its handler consumes
func (c *Client) Connect(ctx context.Context, name string, outbox *model.Outbox) error {
	return c.send(ctx, Connect{Name: name, Outbox: outbox})
}

// Disconnect removes name if outbox is still its registered outbox
func (c *Client) Disconnect(ctx context.Context, name string, outbox *model.Outbox) error {
	return c.send(ctx, Disconnect{Name: name, Outbox: outbox})
}

func (c *Client) SetMode(ctx context.Context, mode model.GameMode) error {
	return c.send(ctx, ModeChange{Mode: mode})
}

func (c *Client) SetTurnDelay(ctx context.Context, d time.Duration) error {
	return c.send(ctx, SetTurnDelay{Delay: d})
}

func (c *Client) SetWinDelay(ctx context.Context, d time.Duration) error {
	return c.send(ctx, SetWinDelay{Delay: d})
}

func (c *Client) Reset(ctx context.Context) error {
	return c.send(ctx, ResetGame{})
}
