// Package engine defines the contract between the controller and the rule
// engines of concrete games, plus the helpers engines share.
package engine

import "github.com/mcoot/codechallenge-go/internal/model"

// Engine is a turn-based rule engine. A single engine instance moves
// through Idle -> Running -> (Win|Draw) -> Idle, the last step by Reset.
//
// Implementations are owned by the controller's goroutine and need not be
// safe for concurrent use.
type Engine interface {
	// PlayerConnected adds a user to the rotation
	PlayerConnected(user model.User)

	// PlayerDisconnected removes a user who does not hold the current turn
	PlayerDisconnected(name string)

	// TryStartGame returns the first turn, or nil if no game can start
	TryStartGame() *model.PlayerTurn

	// PlayerMoves applies the move of the token's user
	PlayerMoves(token model.TurnToken, move model.PlayerMove) model.MoveResult

	// CurrentPlayerDisconnected drops the token's user and returns the
	// replacement turn, or nil if the rotation is empty
	CurrentPlayerDisconnected(token model.TurnToken) *model.PlayerTurn

	// Reset starts a new game instance with the given users in rotation
	Reset(users []model.User)

	// Snapshot returns an immutable view of the current state
	Snapshot() model.Snapshot
}

// Options configures engine construction
type Options struct {
	Width  int
	Height int
}

// DefaultOptions returns the default engine options
func DefaultOptions() Options {
	return Options{
		Width:  20,
		Height: 20,
	}
}
