package controller

import (
	"time"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// DefaultBuffer is the default capacity of the control channel
const DefaultBuffer = 1024

// Msg is a control event for the controller
type Msg interface {
	name() string
}

// Connect registers an authenticated player and the queue to their handler
type Connect struct {
	Name   string
	Outbox *model.Outbox
}

// Disconnect removes a player. When Outbox is set it must match the
// registered entry, so a replaced connection cannot evict its successor.
type Disconnect struct {
	Name   string
	Outbox *model.Outbox
}

// ModeChange switches the operating mode
type ModeChange struct {
	Mode model.GameMode
}

// SetTurnDelay sets the pause before each turn is issued
type SetTurnDelay struct {
	Delay time.Duration
}

// SetWinDelay sets the pause after a game ends
type SetWinDelay struct {
	Delay time.Duration
}

// ResetGame abandons the current game and starts a new one
type ResetGame struct{}

func (Connect) name() string      { return "connect" }
func (Disconnect) name() string   { return "disconnect" }
func (ModeChange) name() string   { return "mode_change" }
func (SetTurnDelay) name() string { return "set_turn_delay" }
func (SetWinDelay) name() string  { return "set_win_delay" }
func (ResetGame) name() string    { return "reset_game" }

// NewChannel creates a control channel of the given capacity
func NewChannel(size int) chan Msg {
	return make(chan Msg, size)
}
