package session

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/protocol"
	"github.com/mcoot/codechallenge-go/internal/testutil"
	"github.com/mcoot/codechallenge-go/internal/transport"
)

const waitTimeout = time.Second

type call struct {
	name   string
	outbox *model.Outbox
}

type fakeController struct {
	connects    chan call
	disconnects chan call
}

func (f *fakeController) Connect(ctx context.Context, name string, outbox *model.Outbox) error {
	f.connects <- call{name, outbox}
	return nil
}

func (f *fakeController) Disconnect(ctx context.Context, name string, outbox *model.Outbox) error {
	f.disconnects <- call{name, outbox}
	return nil
}

type fakeAuth map[string]string

func (f fakeAuth) Authorize(ctx context.Context, username, password string) error {
	if pw, ok := f[username]; ok && pw != password {
		return model.ErrWrongPassword
	}
	return nil
}

type ServerSuite struct {
	suite.Suite
	controller *fakeController
	server     *Server
	client     transport.Stream
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	s.controller = &fakeController{
		connects:    make(chan call, 4),
		disconnects: make(chan call, 4),
	}
	s.server = New(s.controller, fakeAuth{"alice": "secret"}, DefaultConfig(), testutil.NopLogger())
	s.ctx, s.cancel = context.WithCancel(context.Background())

	serverEnd, clientEnd := net.Pipe()
	s.client = transport.NewConnStream(clientEnd)
	s.done = make(chan struct{})
	go func() {
		s.server.Handle(s.ctx, transport.NewConnStream(serverEnd))
		close(s.done)
	}()
}

func (s *ServerSuite) TearDownTest() {
	s.cancel()
	_ = s.client.Close()
	<-s.done
}

func (s *ServerSuite) send(line string) {
	s.Require().NoError(s.client.WriteLine(s.ctx, line))
}

func (s *ServerSuite) read() string {
	ctx, cancel := context.WithTimeout(s.ctx, waitTimeout)
	defer cancel()
	line, err := s.client.ReadLine(ctx)
	s.Require().NoError(err)
	return line
}

func (s *ServerSuite) expectClosed() {
	ctx, cancel := context.WithTimeout(s.ctx, waitTimeout)
	defer cancel()
	_, err := s.client.ReadLine(ctx)
	s.ErrorIs(err, model.ErrConnectionClosed)
}

func (s *ServerSuite) login(name, password string) call {
	s.send(protocol.EncodeAuth(name, password))
	select {
	case c := <-s.controller.connects:
		s.Equal(name, c.name)
		return c
	case <-time.After(waitTimeout):
		s.FailNow("player never connected")
		return call{}
	}
}

func (s *ServerSuite) expectDisconnect(c call) {
	select {
	case d := <-s.controller.disconnects:
		s.Equal(c.name, d.name)
		s.Same(c.outbox, d.outbox)
	case <-time.After(waitTimeout):
		s.FailNow("player never disconnected")
	}
	select {
	case <-c.outbox.Done():
	default:
		s.Fail("outbox left open")
	}
}

func (s *ServerSuite) offerTurn(c call, state string) chan model.MoveMsg {
	replies := model.NewReplyChannel()
	s.Require().NoError(c.outbox.Send(s.ctx, model.ToPlayer{
		YourTurn: &model.YourTurn{State: model.PlayerGameState{Serialized: state}, Reply: replies},
	}))
	return replies
}

func (s *ServerSuite) receiveMove(replies chan model.MoveMsg) model.MoveMsg {
	select {
	case mv, ok := <-replies:
		s.Require().True(ok, "reply dropped")
		return mv
	case <-time.After(waitTimeout):
		s.FailNow("no move relayed")
		return model.MoveMsg{}
	}
}

// Auth tests

func (s *ServerSuite) TestMalformedAuthIsRejected() {
	s.send(`{"hello":"world"}` + "\n")
	s.Equal(`{"error":{"reason":"invalid message format"}}`, s.read())
	s.expectClosed()
	s.Empty(s.controller.connects)
}

func (s *ServerSuite) TestWrongPasswordIsRejected() {
	s.send(protocol.EncodeAuth("alice", "guess"))
	s.Equal(`{"error":{"reason":"wrong password"}}`, s.read())
	s.expectClosed()
	s.Empty(s.controller.connects)
}

// Play tests

func (s *ServerSuite) TestTurnRelay() {
	c := s.login("alice", "secret")

	replies := s.offerTurn(c, `{"your-turn":{"num":0}}`+"\n")
	s.Equal(`{"your-turn":{"num":0}}`, s.read())

	s.send(`{"move":{"add":5}}` + "\n")
	mv := s.receiveMove(replies)
	s.Equal(`{"move":{"add":5}}`, mv.Move.Serialized)
	close(mv.Errors)

	_, open := <-replies
	s.False(open, "reply channel should be closed after one move")

	s.Require().NoError(c.outbox.Send(s.ctx, model.ToPlayer{GameOver: &model.GameOverReason{Winner: "alice"}}))
	s.Equal(`{"game-over":{"reason":"winner alice"}}`, s.read())
}

func (s *ServerSuite) TestRejectedMoveClosesConnection() {
	c := s.login("bob", "pw")

	replies := s.offerTurn(c, `{"your-turn":{}}`+"\n")
	s.read()
	s.send(`{"move":{"x":99,"y":99}}` + "\n")
	mv := s.receiveMove(replies)
	mv.Errors <- model.ClientErrInvalidMove
	close(mv.Errors)

	s.Equal(`{"error":{"reason":"invalid move"}}`, s.read())
	s.expectClosed()
	s.expectDisconnect(c)
}

func (s *ServerSuite) TestDisconnectMidTurnDropsReply() {
	c := s.login("carol", "pw")

	replies := s.offerTurn(c, `{"your-turn":{}}`+"\n")
	s.read()
	s.Require().NoError(s.client.Close())

	select {
	case _, ok := <-replies:
		s.False(ok, "no move should be relayed")
	case <-time.After(waitTimeout):
		s.FailNow("reply never dropped")
	}
	s.expectDisconnect(c)
}

func (s *ServerSuite) TestUnansweredMoveDoesNotBlockNextTurn() {
	c := s.login("dave", "pw")

	replies := s.offerTurn(c, `{"your-turn":{"num":1}}`+"\n")
	s.read()
	s.send(`{"move":{"add":1}}` + "\n")
	s.receiveMove(replies)

	s.offerTurn(c, `{"your-turn":{"num":0}}`+"\n")
	s.Equal(`{"your-turn":{"num":0}}`, s.read())
}

func TestServeOnSeveralListeners(t *testing.T) {
	controller := &fakeController{
		connects:    make(chan call, 4),
		disconnects: make(chan call, 4),
	}
	server := New(controller, fakeAuth{}, DefaultConfig(), testutil.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var addrs []string
	served := make(chan error, 2)
	for range 2 {
		l, err := transport.ListenTCP("127.0.0.1:0")
		require.NoError(t, err)
		addrs = append(addrs, l.Addr())
		go func() { served <- server.Serve(ctx, l) }()
	}

	for i, addr := range addrs {
		client, err := transport.DialTCP(ctx, addr)
		require.NoError(t, err)
		defer client.Close()
		require.NoError(t, client.WriteLine(ctx, protocol.EncodeAuth("p"+strconv.Itoa(i), "pw")))
		select {
		case <-controller.connects:
		case <-time.After(waitTimeout):
			t.Fatalf("player on %s never connected", addr)
		}
	}

	cancel()
	for range 2 {
		select {
		case err := <-served:
			assert.NoError(t, err)
		case <-time.After(waitTimeout):
			t.Fatal("Serve did not return after cancel")
		}
	}
	assert.Len(t, controller.disconnects, 2)
}
