// Package counter is a minimal rule engine: players take turns adding a
// non-negative number to a shared total. It never ends on its own.
package counter

import (
	"errors"

	"github.com/mcoot/codechallenge-go/internal/engine"
	"github.com/mcoot/codechallenge-go/internal/model"
)

// Kind is the engine's registry name and snapshot discriminant
const Kind = "counter"

// State is what players see: {"num":N}
type State struct {
	Num uint64 `json:"num"`
}

// Move is {"add":N}
type Move struct {
	Add *int64 `json:"add"`
}

// Validate rejects a missing or negative addend
func (m *Move) Validate() error {
	if m.Add == nil {
		return errors.New("add is required")
	}
	if *m.Add < 0 {
		return errors.New("add must be non-negative")
	}
	return nil
}

// NewMove builds a Move for clients and tests
func NewMove(n int64) Move {
	return Move{Add: &n}
}

// Game is a running total shared by everyone in rotation
type Game struct {
	num      uint64
	rotation *engine.Rotation
}

// New creates a counter at zero
func New(users []model.User) *Game {
	return &Game{rotation: engine.NewRotation(users)}
}

// NewEngine is the engine.Factory for counter; options are unused
func NewEngine(engine.Options) engine.Engine {
	return New(nil)
}

var _ engine.Engine = (*Game)(nil)

// Num returns the current total
func (g *Game) Num() uint64 {
	return g.num
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
	mv, err := engine.DecodeMove[Move](move)
	if err != nil {
		g.rotation.Remove(token.User.Name)
		return model.MoveMalformed(g.nextTurn())
	}

	g.num += uint64(*mv.Add)

	next := g.nextTurn()
	if next == nil {
		return model.MoveResult{Outcome: model.MoveOK}
	}
	return model.MoveAccepted(*next)
}

func (g *Game) Reset(users []model.User) {
	g.num = 0
	g.rotation = engine.NewRotation(users)
}

func (g *Game) Snapshot() model.Snapshot {
	return engine.NewSnapshot(Kind, struct {
		Num      uint64   `json:"num"`
		Rotation []string `json:"rotation"`
	}{
		Num:      g.num,
		Rotation: g.rotation.Names(),
	})
}

func (g *Game) nextTurn() *model.PlayerTurn {
	user, ok := g.rotation.Advance()
	if !ok {
		return nil
	}
	return &model.PlayerTurn{
		Token: model.TurnToken{User: user},
		State: engine.MustEncodeState(State{Num: g.num}),
	}
}
