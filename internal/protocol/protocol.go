// Package protocol encodes the line-delimited JSON exchanged with game
// clients. Every message is a single-key object terminated by "\n".
package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// Auth is the first line a client sends: {"auth":{...}}
type Auth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type fromClient struct {
	Auth *Auth `json:"auth"`
}

type reason struct {
	Reason string `json:"reason"`
}

type toClient struct {
	Error    *reason `json:"error,omitempty"`
	GameOver *reason `json:"game-over,omitempty"`
}

// ParseAuth decodes an auth line. Anything else is model.ErrMalformedMessage.
func ParseAuth(line string) (Auth, error) {
	var msg fromClient
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &msg); err != nil {
		return Auth{}, fmt.Errorf("%w: %v", model.ErrMalformedMessage, err)
	}
	if msg.Auth == nil {
		return Auth{}, fmt.Errorf("%w: expected auth", model.ErrMalformedMessage)
	}
	return *msg.Auth, nil
}

// EncodeAuth builds the auth line a client sends
func EncodeAuth(username, password string) string {
	return mustLine(fromClient{Auth: &Auth{Username: username, Password: password}})
}

// EncodeError builds {"error":{"reason":...}}
func EncodeError(err model.ClientError) string {
	return mustLine(toClient{Error: &reason{Reason: string(err)}})
}

// GameOverText renders a game over reason as "winner NAME" or "draw"
func GameOverText(r model.GameOverReason) string {
	if r.IsDraw() {
		return "draw"
	}
	return "winner " + r.Winner
}

// EncodeGameOver builds {"game-over":{"reason":...}}
func EncodeGameOver(r model.GameOverReason) string {
	return mustLine(toClient{GameOver: &reason{Reason: GameOverText(r)}})
}

// ServerMessage is a decoded line from the server, as seen by a client.
// Exactly one field is set.
type ServerMessage struct {
	YourTurn json.RawMessage
	Error    string
	GameOver string
}

// ParseServerMessage decodes a line sent by the server
func ParseServerMessage(line string) (ServerMessage, error) {
	var raw struct {
		YourTurn json.RawMessage `json:"your-turn"`
		Error    *reason         `json:"error"`
		GameOver *reason         `json:"game-over"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &raw); err != nil {
		return ServerMessage{}, fmt.Errorf("%w: %v", model.ErrMalformedMessage, err)
	}
	switch {
	case raw.YourTurn != nil:
		return ServerMessage{YourTurn: raw.YourTurn}, nil
	case raw.Error != nil:
		return ServerMessage{Error: raw.Error.Reason}, nil
	case raw.GameOver != nil:
		return ServerMessage{GameOver: raw.GameOver.Reason}, nil
	default:
		return ServerMessage{}, fmt.Errorf("%w: unknown server message", model.ErrMalformedMessage)
	}
}

func mustLine(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data) + "\n"
}
