package transport

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/codechallenge-go/internal/model"
)

func TestConnStreamLines(t *testing.T) {
	a, b := net.Pipe()
	left, right := NewConnStream(a), NewConnStream(b)
	defer left.Close()
	defer right.Close()
	ctx := context.Background()

	go func() {
		_ = left.WriteLine(ctx, "first\r\nsecond\n")
	}()

	line, err := right.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = right.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", line)
}

func TestConnStreamClosedPeer(t *testing.T) {
	a, b := net.Pipe()
	right := NewConnStream(b)
	require.NoError(t, a.Close())

	_, err := right.ReadLine(context.Background())
	assert.ErrorIs(t, err, model.ErrConnectionClosed)
}

func TestConnStreamReadCancelled(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	right := NewConnStream(b)
	defer right.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := right.ReadLine(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTCPListenerRoundTrip(t *testing.T) {
	l, err := ListenTCP("127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	ctx := context.Background()

	accepted := make(chan Stream, 1)
	go func() {
		s, err := l.Accept(ctx)
		if err == nil {
			accepted <- s
		}
	}()

	client, err := DialTCP(ctx, l.Addr())
	require.NoError(t, err)
	defer client.Close()

	var server Stream
	select {
	case server = <-accepted:
	case <-time.After(time.Second):
		t.Fatal("no connection accepted")
	}
	defer server.Close()

	require.NoError(t, client.WriteLine(ctx, `{"auth":{}}`+"\n"))
	line, err := server.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"auth":{}}`, line)
	assert.NotEmpty(t, server.RemoteAddr())
}

func TestTCPListenerAcceptCancelled(t *testing.T) {
	l, err := ListenTCP("127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Accept(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWebSocketRoundTrip(t *testing.T) {
	l := NewWebSocketListener("test")
	srv := httptest.NewServer(l)
	defer srv.Close()
	defer l.Close()
	ctx := context.Background()

	accepted := make(chan Stream, 1)
	go func() {
		s, err := l.Accept(ctx)
		if err == nil {
			accepted <- s
		}
	}()

	client, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)

	var server Stream
	select {
	case server = <-accepted:
	case <-time.After(time.Second):
		t.Fatal("no websocket accepted")
	}

	require.NoError(t, server.WriteLine(ctx, `{"your-turn":{"num":0}}`+"\n"))
	line, err := client.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"your-turn":{"num":0}}`, line)

	require.NoError(t, client.WriteLine(ctx, `{"move":{"add":1}}`))
	line, err = server.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"move":{"add":1}}`, line)

	require.NoError(t, client.Close())
	_, err = server.ReadLine(ctx)
	assert.ErrorIs(t, err, model.ErrConnectionClosed)
}

func TestWebSocketListenerClosed(t *testing.T) {
	l := NewWebSocketListener("test")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	_, err := l.Accept(context.Background())
	assert.ErrorIs(t, err, model.ErrConnectionClosed)
}
