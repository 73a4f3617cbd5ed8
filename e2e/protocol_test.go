package e2e_test

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/codechallenge-go/internal/config"
	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/protocol"
	"github.com/mcoot/codechallenge-go/internal/transport"
)

type rawClient struct {
	t      *testing.T
	stream transport.Stream
	ctx    context.Context
}

func dial(t *testing.T, addr string) *rawClient {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	stream, err := transport.Dial(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stream.Close() })
	return &rawClient{t: t, stream: stream, ctx: ctx}
}

func (c *rawClient) send(line string) {
	c.t.Helper()
	require.NoError(c.t, c.stream.WriteLine(c.ctx, line+"\n"))
}

func (c *rawClient) read() protocol.ServerMessage {
	c.t.Helper()
	line, err := c.stream.ReadLine(c.ctx)
	require.NoError(c.t, err)
	msg, err := protocol.ParseServerMessage(line)
	require.NoError(c.t, err, line)
	return msg
}

func (c *rawClient) expectClosed() {
	c.t.Helper()
	_, err := c.stream.ReadLine(c.ctx)
	assert.ErrorIs(c.t, err, model.ErrConnectionClosed)
}

func counterNum(t *testing.T, state json.RawMessage) uint64 {
	t.Helper()
	var s struct {
		Num uint64 `json:"num"`
	}
	require.NoError(t, json.Unmarshal(state, &s), string(state))
	return s.Num
}

func TestProtocolOverTCP(t *testing.T) {
	app := startApp(t, func(cfg *config.Config) {
		cfg.Game = "counter"
	})

	alice := dial(t, app.PlayerAddr)
	alice.send(`{"auth":{"username":"alice","password":"secret"}}`)

	turn := alice.read()
	require.NotNil(t, turn.YourTurn)
	assert.Equal(t, uint64(0), counterNum(t, turn.YourTurn))

	alice.send(`{"move":{"add":3}}`)
	turn = alice.read()
	require.NotNil(t, turn.YourTurn)
	assert.Equal(t, uint64(3), counterNum(t, turn.YourTurn))

	t.Run("wrong password", func(t *testing.T) {
		imposter := dial(t, app.PlayerAddr)
		imposter.send(`{"auth":{"username":"alice","password":"guess"}}`)
		assert.Equal(t, string(model.ClientErrWrongPassword), imposter.read().Error)
		imposter.expectClosed()
	})

	t.Run("malformed auth", func(t *testing.T) {
		c := dial(t, app.PlayerAddr)
		c.send(`hello`)
		assert.Equal(t, string(model.ClientErrInvalidMessageFormat), c.read().Error)
		c.expectClosed()
	})

	t.Run("overlong password", func(t *testing.T) {
		c := dial(t, app.PlayerAddr)
		c.send(protocol.EncodeAuth("carol", strings.Repeat("x", 100)))
		assert.Equal(t, string(model.ClientErrInvalidMessageFormat), c.read().Error)
		c.expectClosed()
	})

	t.Run("malformed move", func(t *testing.T) {
		alice.send(`{"move":{"add":"lots"}}`)
		assert.Equal(t, string(model.ClientErrInvalidMessageFormat), alice.read().Error)
		alice.expectClosed()
	})
}

func TestProtocolGomokuGameOver(t *testing.T) {
	app := startApp(t, func(cfg *config.Config) {
		cfg.BoardWidth, cfg.BoardHeight = 5, 1
	})

	alice := dial(t, app.PlayerAddr)
	alice.send(`{"auth":{"username":"alice","password":"secret"}}`)

	for x := 0; x < 5; x++ {
		turn := alice.read()
		require.NotNil(t, turn.YourTurn, "turn %d", x)
		alice.send(`{"move":{"x":` + strconv.Itoa(x) + `,"y":0}}`)
	}
	assert.Equal(t, "winner alice", alice.read().GameOver)

	// A fresh board follows the win
	next := alice.read()
	require.NotNil(t, next.YourTurn)
}
