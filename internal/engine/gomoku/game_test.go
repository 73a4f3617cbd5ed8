package gomoku

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/codechallenge-go/internal/engine"
	"github.com/mcoot/codechallenge-go/internal/model"
)

type GameSuite struct {
	suite.Suite
	game *Game
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

func (s *GameSuite) SetupTest() {
	s.game = New(10, 10, nil)
	s.game.PlayerConnected(alice)
	s.game.PlayerConnected(bob)
}

func (s *GameSuite) move(x, y int) model.PlayerMove {
	m, err := engine.EncodeMove(NewMove(x, y))
	s.Require().NoError(err)
	return m
}

func (s *GameSuite) tokenFor(u model.User) model.TurnToken {
	return model.TurnToken{User: u}
}

// TryStartGame tests

func (s *GameSuite) TestTryStartGameWithNoPlayers() {
	g := New(10, 10, nil)
	s.Nil(g.TryStartGame())
}

func (s *GameSuite) TestTryStartGameGivesFirstPlayerTheTurn() {
	g := New(2, 1, []model.User{alice})
	turn := g.TryStartGame()
	s.Require().NotNil(turn)

	s.Equal("alice", turn.Token.User.Name)
	s.Equal(`{"your-turn":{"cells":["empty","empty"],"width":2,"height":1}}`+"\n", turn.State.Serialized)
}

// PlayerMoves tests

func (s *GameSuite) TestTurnsAlternate() {
	turn := s.game.TryStartGame()
	s.Require().NotNil(turn)
	s.Equal("alice", turn.Token.User.Name)

	res := s.game.PlayerMoves(turn.Token, s.move(0, 0))
	s.Equal(model.MoveOK, res.Outcome)
	s.Require().NotNil(res.Next)
	s.Equal("bob", res.Next.Token.User.Name)

	res = s.game.PlayerMoves(res.Next.Token, s.move(1, 0))
	s.Require().NotNil(res.Next)
	s.Equal("alice", res.Next.Token.User.Name)
}

func (s *GameSuite) TestNextStateIncludesMove() {
	turn := s.game.TryStartGame()
	res := s.game.PlayerMoves(turn.Token, s.move(2, 3))
	s.Require().NotNil(res.Next)

	state, err := engine.DecodeState[struct {
		Cells []any `json:"cells"`
	}](res.Next.State)
	s.Require().NoError(err)
	s.Equal(map[string]any{"occupied": "alice"}, state.Cells[3*10+2])
}

func (s *GameSuite) TestOccupiedCellEliminatesMover() {
	turn := s.game.TryStartGame()
	res := s.game.PlayerMoves(turn.Token, s.move(0, 0))

	res = s.game.PlayerMoves(res.Next.Token, s.move(0, 0))
	s.Equal(model.MoveInvalid, res.Outcome)
	s.Require().NotNil(res.Next)
	s.Equal("alice", res.Next.Token.User.Name)
	s.False(s.game.rotation.Contains("bob"))
}

func (s *GameSuite) TestOutOfBoundsIsInvalidMove() {
	turn := s.game.TryStartGame()
	res := s.game.PlayerMoves(turn.Token, s.move(10, 0))
	s.Equal(model.MoveInvalid, res.Outcome)
	s.Require().NotNil(res.Next)
	s.Equal("bob", res.Next.Token.User.Name)
}

func (s *GameSuite) TestMalformedMoveEliminatesMover() {
	tests := []string{
		`not json`,
		`{"move":{"x":1}}`,
		`{"move":{"x":-1,"y":0}}`,
		`{"place":{"x":1,"y":1}}`,
	}
	for _, payload := range tests {
		s.Run(payload, func() {
			s.SetupTest()
			turn := s.game.TryStartGame()
			res := s.game.PlayerMoves(turn.Token, model.PlayerMove{Serialized: payload})
			s.Equal(model.MoveInvalidFormat, res.Outcome)
			s.Require().NotNil(res.Next)
			s.Equal("bob", res.Next.Token.User.Name)
		})
	}
}

func (s *GameSuite) TestLastPlayerEliminatedLeavesNoTurn() {
	g := New(5, 5, []model.User{alice})
	turn := g.TryStartGame()
	res := g.PlayerMoves(turn.Token, s.move(7, 7))
	s.Equal(model.MoveInvalid, res.Outcome)
	s.Nil(res.Next)
}

func (s *GameSuite) TestFiveInARowWins() {
	turn := s.game.TryStartGame()
	var res model.MoveResult
	for i := 0; i < 5; i++ {
		res = s.game.PlayerMoves(turn.Token, s.move(5+i, 5))
		if i == 4 {
			break
		}
		s.Require().Equal(model.MoveOK, res.Outcome)
		res = s.game.PlayerMoves(res.Next.Token, s.move(5+i, 6))
		s.Require().Equal(model.MoveOK, res.Outcome)
		turn = res.Next
	}

	s.Equal(model.MoveWin, res.Outcome)
	s.Nil(res.Next)
	s.Require().NotNil(s.game.Winner())
	s.Equal("alice", s.game.Winner().User.Name)
	s.Equal(Line{First: pos(5, 5), Last: pos(9, 5)}, s.game.Winner().Line)
}

func (s *GameSuite) TestFullBoardIsDraw() {
	g := New(1, 1, []model.User{alice, bob})
	turn := g.TryStartGame()
	res := g.PlayerMoves(turn.Token, s.move(0, 0))
	s.Equal(model.MoveDraw, res.Outcome)
	s.Nil(res.Next)
}

// Disconnect tests

func (s *GameSuite) TestCurrentPlayerDisconnectedPassesTurn() {
	turn := s.game.TryStartGame()
	next := s.game.CurrentPlayerDisconnected(turn.Token)
	s.Require().NotNil(next)
	s.Equal("bob", next.Token.User.Name)

	s.Nil(s.game.CurrentPlayerDisconnected(next.Token))
}

func (s *GameSuite) TestPlayerDisconnectedOutOfTurn() {
	turn := s.game.TryStartGame()
	s.game.PlayerDisconnected("bob")

	res := s.game.PlayerMoves(turn.Token, s.move(0, 0))
	s.Require().NotNil(res.Next)
	s.Equal("alice", res.Next.Token.User.Name)
}

// Reset tests

func (s *GameSuite) TestResetClearsBoardAndRestoresRotation() {
	turn := s.game.TryStartGame()
	s.game.PlayerMoves(turn.Token, s.move(10, 10))
	s.False(s.game.rotation.Contains("alice"))

	s.game.Reset([]model.User{alice, bob})

	s.Nil(s.game.Winner())
	s.Len(s.game.Board().EmptyPositions(), 100)
	s.Equal([]string{"alice", "bob"}, s.game.rotation.Names())
	s.Equal(10, s.game.Board().Width)
}

// Snapshot tests

func (s *GameSuite) TestSnapshotEquality() {
	other := New(10, 10, []model.User{alice, bob})
	s.True(s.game.Snapshot().Equal(other.Snapshot()))

	turn := s.game.TryStartGame()
	s.game.PlayerMoves(turn.Token, s.move(0, 0))
	s.False(s.game.Snapshot().Equal(other.Snapshot()))
	s.Equal(Kind, s.game.Snapshot().Kind)
}

func (s *GameSuite) TestSnapshotIncludesWinnerAndColors() {
	g := New(5, 1, []model.User{alice})
	turn := g.TryStartGame()
	for x := 0; x < 5; x++ {
		res := g.PlayerMoves(turn.Token, s.move(x, 0))
		if res.Next != nil {
			turn = res.Next
		}
	}

	s.JSONEq(`{
		"width":5,"height":1,
		"cells":["alice","alice","alice","alice","alice"],
		"colors":{"alice":"#ff0000"},
		"rotation":["alice"],
		"winner":{"name":"alice","line":{"first":{"x":0,"y":0},"last":{"x":4,"y":0}}},
		"draw":false
	}`, string(g.Snapshot().Data))
}
