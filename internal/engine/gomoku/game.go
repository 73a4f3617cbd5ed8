// Package gomoku implements the five-in-a-row rule engine.
package gomoku

import (
	"errors"

	"github.com/mcoot/codechallenge-go/internal/engine"
	"github.com/mcoot/codechallenge-go/internal/model"
)

// Kind is the engine's registry name and snapshot discriminant
const Kind = "gomoku"

// Move is a stone placement as sent by a player: {"move":{"x":X,"y":Y}}
type Move struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// Validate rejects missing and negative coordinates as malformed
func (m *Move) Validate() error {
	if m.X == nil || m.Y == nil {
		return errors.New("x and y are required")
	}
	if *m.X < 0 || *m.Y < 0 {
		return errors.New("coordinates must be non-negative")
	}
	return nil
}

// Position returns the move's target cell
func (m Move) Position() Position {
	return Position{X: *m.X, Y: *m.Y}
}

// NewMove builds a Move for clients and tests
func NewMove(x, y int) Move {
	return Move{X: &x, Y: &y}
}

// Winner records who won and with which line
type Winner struct {
	User model.User
	Line Line
}

// Game is a five-in-a-row game instance
type Game struct {
	board    *Board
	winner   *Winner
	rotation *engine.Rotation
}

// New creates a game on an empty width x height board
func New(width, height int, users []model.User) *Game {
	return &Game{
		board:    NewBoard(width, height),
		rotation: engine.NewRotation(users),
	}
}

// NewEngine is the engine.Factory for gomoku
func NewEngine(opts engine.Options) engine.Engine {
	return New(opts.Width, opts.Height, nil)
}

// Ensure Game implements engine.Engine
var _ engine.Engine = (*Game)(nil)

// Board returns the live board
func (g *Game) Board() *Board {
	return g.board
}

// Winner returns the winner of this game instance, if any
func (g *Game) Winner() *Winner {
	return g.winner
}

func (g *Game) PlayerConnected(user model.User) {
	g.rotation.Add(user)
}

func (g *Game) PlayerDisconnected(name string) {
	g.rotation.Remove(name)
}

func (g *Game) TryStartGame() *model.PlayerTurn {
	return g.nextTurn()
}

func (g *Game) CurrentPlayerDisconnected(token model.TurnToken) *model.PlayerTurn {
	g.rotation.Remove(token.User.Name)
	return g.nextTurn()
}

func (g *Game) PlayerMoves(token model.TurnToken, move model.PlayerMove) model.MoveResult {
	user := token.User

	mv, err := engine.DecodeMove[Move](move)
	if err != nil {
		g.rotation.Remove(user.Name)
		return model.MoveMalformed(g.nextTurn())
	}

	line, err := g.board.Place(user, mv.Position())
	if err != nil {
		g.rotation.Remove(user.Name)
		return model.MoveRejected(g.nextTurn())
	}

	if line != nil {
		g.winner = &Winner{User: user, Line: *line}
		return model.MoveWon()
	}
	if g.board.IsFull() {
		return model.MoveDrawn()
	}

	next := g.nextTurn()
	if next == nil {
		return model.MoveResult{Outcome: model.MoveOK}
	}
	return model.MoveAccepted(*next)
}

func (g *Game) Reset(users []model.User) {
	*g = *New(g.board.Width, g.board.Height, users)
}

func (g *Game) nextTurn() *model.PlayerTurn {
	user, ok := g.rotation.Advance()
	if !ok {
		return nil
	}
	return &model.PlayerTurn{
		Token: model.TurnToken{User: user},
		State: engine.MustEncodeState(g.board),
	}
}

type snapshotWinner struct {
	Name string `json:"name"`
	Line Line   `json:"line"`
}

type snapshotState struct {
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Cells    []string          `json:"cells"`
	Colors   map[string]string `json:"colors"`
	Rotation []string          `json:"rotation"`
	Winner   *snapshotWinner   `json:"winner"`
	Draw     bool              `json:"draw"`
}

// Snapshot returns the board with owner names per cell and their colors
func (g *Game) Snapshot() model.Snapshot {
	state := snapshotState{
		Width:    g.board.Width,
		Height:   g.board.Height,
		Cells:    make([]string, len(g.board.cells)),
		Colors:   make(map[string]string),
		Rotation: g.rotation.Names(),
	}
	for i, c := range g.board.cells {
		if c.Owner != nil {
			state.Cells[i] = c.Owner.Name
			state.Colors[c.Owner.Name] = c.Owner.Color.Hex()
		}
	}
	if g.winner != nil {
		state.Winner = &snapshotWinner{Name: g.winner.User.Name, Line: g.winner.Line}
	} else {
		state.Draw = g.board.IsFull()
	}
	return engine.NewSnapshot(Kind, state)
}
