// Package transport hides whether a player is connected over raw TCP or a
// WebSocket. Both carry one JSON message per line.
package transport

import "context"

// Stream is a bidirectional line-oriented connection
type Stream interface {
	// ReadLine returns the next line without its terminator, or
	// model.ErrConnectionClosed once the peer has gone. A read cut short
	// by ctx leaves the stream unusable.
	ReadLine(ctx context.Context) (string, error)

	// WriteLine sends line, which should include its "\n"
	WriteLine(ctx context.Context, line string) error

	Close() error
	RemoteAddr() string
}

// Listener yields incoming streams
type Listener interface {
	Accept(ctx context.Context) (Stream, error)
	Close() error
	Addr() string
}
