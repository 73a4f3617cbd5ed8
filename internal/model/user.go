package model

import (
	"encoding/json"
	"fmt"
)

// Color is a display color assigned to a player
type Color struct {
	R uint8
	G uint8
	B uint8
}

// RGB creates a Color from its components
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the color as a CSS hex string, e.g. "#ff00aa"
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalJSON encodes the color as its hex string
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON decodes a "#rrggbb" string
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return fmt.Errorf("parse color %q: %w", s, err)
	}
	return nil
}

// User is a connected player's identity for the life of a connection
type User struct {
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// TurnToken proves it is the named user's turn. Only rule engines create
// tokens and the controller consumes each one exactly once.
type TurnToken struct {
	User User
}

// PlayerGameState is an engine state snapshot serialized for one player
type PlayerGameState struct {
	Serialized string
}

// PlayerMove is a move payload as received from a player; only the rule
// engine parses it
type PlayerMove struct {
	Serialized string
}

// PlayerTurn pairs a turn token with the state the player should see
type PlayerTurn struct {
	Token TurnToken
	State PlayerGameState
}
