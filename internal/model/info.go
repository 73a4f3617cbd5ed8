package model

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"
)

// ScoreTable maps a player name to their number of wins
type ScoreTable map[string]uint64

// AddWin records a win for name
func (s ScoreTable) AddWin(name string) {
	s[name]++
}

// Clone returns an independent copy of the table
func (s ScoreTable) Clone() ScoreTable {
	out := make(ScoreTable, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Ranked returns the names ordered by descending wins, then by name
func (s ScoreTable) Ranked() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s[names[i]] != s[names[j]] {
			return s[names[i]] > s[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// ServerInfo is the controller's settings and roster as seen by observers
type ServerInfo struct {
	ConnectedUsers []User        `json:"connected_users"`
	Mode           GameMode      `json:"mode"`
	Scores         ScoreTable    `json:"scores"`
	TurnDelay      time.Duration `json:"turn_delay"`
	WinDelay       time.Duration `json:"win_delay"`
}

// Snapshot is an immutable view of a rule engine's state. Kind names the
// engine, Data is the engine's canonical JSON encoding of its state.
type Snapshot struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Equal compares two snapshots structurally
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Kind == other.Kind && bytes.Equal(s.Data, other.Data)
}
