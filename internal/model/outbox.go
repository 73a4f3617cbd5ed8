package model

import (
	"context"
	"sync"
)

// Outbox is the bounded queue from the controller to one player's handler.
// The handler calls Close when it stops consuming, after which every Send
// fails with ErrPlayerChannelClosed instead of blocking.
type Outbox struct {
	ch   chan ToPlayer
	done chan struct{}
	once sync.Once
}

// NewOutbox creates an Outbox with the given capacity
func NewOutbox(size int) *Outbox {
	return &Outbox{
		ch:   make(chan ToPlayer, size),
		done: make(chan struct{}),
	}
}

// Send queues msg, blocking while the queue is full
func (o *Outbox) Send(ctx context.Context, msg ToPlayer) error {
	select {
	case <-o.done:
		return ErrPlayerChannelClosed
	default:
	}

	select {
	case o.ch <- msg:
		return nil
	case <-o.done:
		return ErrPlayerChannelClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Messages returns the consumer side of the queue
func (o *Outbox) Messages() <-chan ToPlayer {
	return o.ch
}

// Done is closed once the consumer has gone away
func (o *Outbox) Done() <-chan struct{} {
	return o.done
}

// Close marks the consumer as gone. Safe to call more than once.
func (o *Outbox) Close() {
	o.once.Do(func() { close(o.done) })
}
