package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// wsStream is a Stream where each text message is one line
type wsStream struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// NewWebSocketStream wraps an established WebSocket connection
func NewWebSocketStream(conn *websocket.Conn) Stream {
	conn.SetReadLimit(MaxLineLength)
	return &wsStream{conn: conn}
}

func (s *wsStream) ReadLine(ctx context.Context) (string, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", errors.Join(model.ErrConnectionClosed, err)
		}
		if kind != websocket.TextMessage {
			continue
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

func (s *wsStream) WriteLine(ctx context.Context, line string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	deadline, _ := ctx.Deadline()
	_ = s.conn.SetWriteDeadline(deadline)
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetWriteDeadline(time.Now())
	})
	defer stop()

	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(strings.TrimRight(line, "\n"))); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Join(model.ErrConnectionClosed, err)
	}
	return nil
}

func (s *wsStream) Close() error {
	s.writeMu.Lock()
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	s.writeMu.Unlock()
	return s.conn.Close()
}

func (s *wsStream) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

// WebSocketListener is an http.Handler that upgrades requests and hands the
// resulting streams to Accept
type WebSocketListener struct {
	upgrader websocket.Upgrader
	addr     string
	conns    chan Stream
	done     chan struct{}
	once     sync.Once
}

// NewWebSocketListener creates a listener. addr is informational, the
// listener is served by whatever HTTP server mounts it.
func NewWebSocketListener(addr string) *WebSocketListener {
	return &WebSocketListener{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		addr:  addr,
		conns: make(chan Stream),
		done:  make(chan struct{}),
	}
}

func (l *WebSocketListener) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-l.done:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		return
	}
	stream := NewWebSocketStream(conn)

	select {
	case l.conns <- stream:
	case <-l.done:
		_ = stream.Close()
	case <-r.Context().Done():
		_ = stream.Close()
	}
}

func (l *WebSocketListener) Accept(ctx context.Context) (Stream, error) {
	select {
	case s := <-l.conns:
		return s, nil
	case <-l.done:
		return nil, model.ErrConnectionClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *WebSocketListener) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}

func (l *WebSocketListener) Addr() string {
	return l.addr
}

// DialWebSocket connects to a WebSocket game server, e.g. ws://host:8080/ws
func DialWebSocket(ctx context.Context, url string) (Stream, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return NewWebSocketStream(conn), nil
}

// Dial picks TCP or WebSocket from the address form
func Dial(ctx context.Context, addr string) (Stream, error) {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return DialWebSocket(ctx, addr)
	}
	return DialTCP(ctx, addr)
}
