package transport

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// MaxLineLength bounds a single inbound line
const MaxLineLength = 64 * 1024

// connStream is a Stream over any net.Conn
type connStream struct {
	conn    net.Conn
	scanner *bufio.Scanner
	writeMu sync.Mutex
}

// NewConnStream wraps conn as a Stream
func NewConnStream(conn net.Conn) Stream {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), MaxLineLength)
	return &connStream{conn: conn, scanner: scanner}
}

func (s *connStream) ReadLine(ctx context.Context) (string, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	if s.scanner.Scan() {
		return strings.TrimRight(s.scanner.Text(), "\r"), nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	err := s.scanner.Err()
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return "", model.ErrConnectionClosed
	}
	return "", err
}

func (s *connStream) WriteLine(ctx context.Context, line string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetWriteDeadline(time.Now())
	})
	defer stop()

	if _, err := io.WriteString(s.conn, line); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Join(model.ErrConnectionClosed, err)
	}
	return nil
}

func (s *connStream) Close() error {
	return s.conn.Close()
}

func (s *connStream) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

// TCPListener accepts raw TCP players
type TCPListener struct {
	listener net.Listener
}

// ListenTCP starts listening on addr, e.g. "127.0.0.1:7654"
func ListenTCP(addr string) (*TCPListener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &TCPListener{listener: l}, nil
}

// Accept waits for a connection. Cancelling ctx closes the listener.
func (l *TCPListener) Accept(ctx context.Context) (Stream, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = l.listener.Close()
	})
	defer stop()

	conn, err := l.listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return NewConnStream(conn), nil
}

func (l *TCPListener) Close() error {
	return l.listener.Close()
}

func (l *TCPListener) Addr() string {
	return l.listener.Addr().String()
}

// DialTCP connects to a TCP game server
func DialTCP(ctx context.Context, addr string) (Stream, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewConnStream(conn), nil
}
