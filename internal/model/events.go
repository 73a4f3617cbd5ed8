package model

// ClientError is an error reason reported to a player's client
type ClientError string

const (
	ClientErrInvalidMessageFormat ClientError = "invalid message format"
	ClientErrInvalidMove          ClientError = "invalid move"
	ClientErrWrongPassword        ClientError = "wrong password"
)

// GameOverReason describes how a game ended
type GameOverReason struct {
	Winner string // Empty for a draw
}

// IsDraw reports whether the game ended without a winner
func (r GameOverReason) IsDraw() bool {
	return r.Winner == ""
}

// MoveMsg is a player's reply to a YourTurn. The controller either sends a
// single ClientError on Errors or closes it once the move is processed.
type MoveMsg struct {
	Move   PlayerMove
	Errors chan<- ClientError
}

// ToPlayer is a message the controller sends to one player's handler.
// Exactly one of YourTurn or GameOver is set.
type ToPlayer struct {
	YourTurn *YourTurn
	GameOver *GameOverReason
}

// YourTurn asks the player for a move. Reply is single use: the handler
// sends at most one MoveMsg and then closes it.
type YourTurn struct {
	State PlayerGameState
	Reply chan<- MoveMsg
}

// NewReplyChannel creates the single-use reply channel for one turn
func NewReplyChannel() chan MoveMsg {
	return make(chan MoveMsg, 1)
}

// NewErrorChannel creates the single-use error channel for one move
func NewErrorChannel() chan ClientError {
	return make(chan ClientError, 1)
}
