package model

import (
	"fmt"
	"strings"
)

// GameMode is the controller's operating mode
type GameMode string

const (
	ModePractice    GameMode = "practice"    // Games run, no score counting
	ModeGating      GameMode = "gating"      // Turn dispatch suspended, connections kept
	ModeCompetition GameMode = "competition" // Games run and wins are counted
)

// ParseGameMode converts a mode name into a GameMode
func ParseGameMode(s string) (GameMode, error) {
	switch GameMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePractice:
		return ModePractice, nil
	case ModeGating:
		return ModeGating, nil
	case ModeCompetition:
		return ModeCompetition, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// CountsScore reports whether wins are recorded in this mode
func (m GameMode) CountsScore() bool {
	return m == ModeCompetition
}

// ValidGameModes returns all mode names
func ValidGameModes() []GameMode {
	return []GameMode{ModePractice, ModeGating, ModeCompetition}
}
