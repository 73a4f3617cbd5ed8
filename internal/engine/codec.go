package engine

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// Validator is implemented by move types that need checks json cannot express
type Validator interface {
	Validate() error
}

type stateEnvelope struct {
	YourTurn any `json:"your-turn"`
}

type moveEnvelope struct {
	Move *json.RawMessage `json:"move"`
}

// EncodeState wraps an engine state as the line sent to a player:
// {"your-turn":STATE}\n
func EncodeState(state any) (model.PlayerGameState, error) {
	data, err := json.Marshal(stateEnvelope{YourTurn: state})
	if err != nil {
		return model.PlayerGameState{}, fmt.Errorf("encode state: %w", err)
	}
	return model.PlayerGameState{Serialized: string(data) + "\n"}, nil
}

// MustEncodeState is EncodeState for state types that always marshal
func MustEncodeState(state any) model.PlayerGameState {
	s, err := EncodeState(state)
	if err != nil {
		panic(err)
	}
	return s
}

// DecodeMove parses a {"move":MOVE} payload into T. Any failure is
// reported as model.ErrInvalidMoveFormat.
func DecodeMove[T any](move model.PlayerMove) (T, error) {
	var out T

	var env moveEnvelope
	if err := json.Unmarshal([]byte(move.Serialized), &env); err != nil {
		return out, fmt.Errorf("%w: %v", model.ErrInvalidMoveFormat, err)
	}
	if env.Move == nil {
		return out, fmt.Errorf("%w: missing move", model.ErrInvalidMoveFormat)
	}
	if err := json.Unmarshal(*env.Move, &out); err != nil {
		return out, fmt.Errorf("%w: %v", model.ErrInvalidMoveFormat, err)
	}
	if v, ok := any(&out).(Validator); ok {
		if err := v.Validate(); err != nil {
			return out, fmt.Errorf("%w: %v", model.ErrInvalidMoveFormat, err)
		}
	}
	return out, nil
}

// EncodeMove builds the payload DecodeMove accepts; clients and tests use it
func EncodeMove(move any) (model.PlayerMove, error) {
	data, err := json.Marshal(map[string]any{"move": move})
	if err != nil {
		return model.PlayerMove{}, fmt.Errorf("encode move: %w", err)
	}
	return model.PlayerMove{Serialized: string(data)}, nil
}

// DecodeState extracts STATE from a {"your-turn":STATE} line into T
func DecodeState[T any](state model.PlayerGameState) (T, error) {
	var env struct {
		YourTurn *json.RawMessage `json:"your-turn"`
	}
	var out T
	if err := json.Unmarshal([]byte(state.Serialized), &env); err != nil {
		return out, fmt.Errorf("decode state: %w", err)
	}
	if env.YourTurn == nil {
		return out, fmt.Errorf("decode state: %w", model.ErrMalformedMessage)
	}
	if err := json.Unmarshal(*env.YourTurn, &out); err != nil {
		return out, fmt.Errorf("decode state: %w", err)
	}
	return out, nil
}

// NewSnapshot marshals an engine's display state into a Snapshot
func NewSnapshot(kind string, state any) model.Snapshot {
	data, err := json.Marshal(state)
	if err != nil {
		panic(fmt.Sprintf("snapshot %s: %v", kind, err))
	}
	return model.Snapshot{Kind: kind, Data: data}
}
