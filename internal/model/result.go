package model

// MoveOutcome classifies the result of applying a player's move
type MoveOutcome int

const (
	MoveOK            MoveOutcome = iota // Move accepted, Next holds the next turn
	MoveWin                              // Mover won the game
	MoveDraw                             // Board exhausted without a winner
	MoveInvalid                          // Well-formed but illegal move
	MoveInvalidFormat                    // Payload could not be parsed
)

func (o MoveOutcome) String() string {
	switch o {
	case MoveOK:
		return "ok"
	case MoveWin:
		return "win"
	case MoveDraw:
		return "draw"
	case MoveInvalid:
		return "invalid_move"
	case MoveInvalidFormat:
		return "invalid_format"
	default:
		return "unknown"
	}
}

// MoveResult is what a rule engine returns for a move.
// Next is always set for MoveOK, never set for MoveWin and MoveDraw, and
// optionally set (the recovery turn) for the two invalid outcomes.
type MoveResult struct {
	Outcome MoveOutcome
	Next    *PlayerTurn
}

// MoveAccepted returns an Ok result handing the turn to next
func MoveAccepted(next PlayerTurn) MoveResult {
	return MoveResult{Outcome: MoveOK, Next: &next}
}

// MoveWon returns a Win result
func MoveWon() MoveResult {
	return MoveResult{Outcome: MoveWin}
}

// MoveDrawn returns a Draw result
func MoveDrawn() MoveResult {
	return MoveResult{Outcome: MoveDraw}
}

// MoveRejected returns an InvalidMove result with an optional recovery turn
func MoveRejected(next *PlayerTurn) MoveResult {
	return MoveResult{Outcome: MoveInvalid, Next: next}
}

// MoveMalformed returns an InvalidFormat result with an optional recovery turn
func MoveMalformed(next *PlayerTurn) MoveResult {
	return MoveResult{Outcome: MoveInvalidFormat, Next: next}
}

// IsGameOver reports whether the result ended the game
func (r MoveResult) IsGameOver() bool {
	return r.Outcome == MoveWin || r.Outcome == MoveDraw
}
