package response

import (
	"encoding/json"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}

// Player is a connected player
type Player struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Info represents the server info in API responses
type Info struct {
	Players   []Player          `json:"players"`
	Mode      string            `json:"mode"`
	Scores    map[string]uint64 `json:"scores"`
	Ranking   []string          `json:"ranking"`
	TurnDelay string            `json:"turn_delay"`
	WinDelay  string            `json:"win_delay"`
}

// InfoFromModel converts model.ServerInfo
func InfoFromModel(i model.ServerInfo) Info {
	players := make([]Player, 0, len(i.ConnectedUsers))
	for _, u := range i.ConnectedUsers {
		players = append(players, Player{Name: u.Name, Color: u.Color.Hex()})
	}
	scores := make(map[string]uint64, len(i.Scores))
	for name, wins := range i.Scores {
		scores[name] = wins
	}
	return Info{
		Players:   players,
		Mode:      string(i.Mode),
		Scores:    scores,
		Ranking:   i.Scores.Ranked(),
		TurnDelay: i.TurnDelay.String(),
		WinDelay:  i.WinDelay.String(),
	}
}

// State is the latest game state
type State struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// StateFromModel converts model.Snapshot
func StateFromModel(s model.Snapshot) State {
	return State{Kind: s.Kind, Data: s.Data}
}
