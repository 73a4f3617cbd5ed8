// Package components renders the dashboard HTML as templ components.
//
//go:generate templ generate
package components

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/codechallenge-go/internal/engine/counter"
	"github.com/mcoot/codechallenge-go/internal/engine/gomoku"
	"github.com/mcoot/codechallenge-go/internal/model"
)

// Element IDs the SSE updates swap into
const (
	InfoPanelID  = "info-panel"
	StatePanelID = "state-panel"
)

// DashboardData is everything the dashboard page shows
type DashboardData struct {
	Info     model.ServerInfo
	HasInfo  bool
	State    model.Snapshot
	HasState bool
	Flash    string
}

type gomokuView struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Cells  []string          `json:"cells"`
	Colors map[string]string `json:"colors"`
	Winner *struct {
		Name string `json:"name"`
	} `json:"winner"`
	Draw bool `json:"draw"`
}

// owner returns the name holding (x, y), or "" for an empty cell
func (v gomokuView) owner(x, y int) string {
	i := y*v.Width + x
	if i >= len(v.Cells) {
		return ""
	}
	return v.Cells[i]
}

type counterView struct {
	Num uint64 `json:"num"`
}

func swatch(hex string) map[string]string {
	return map[string]string{"background-color": hex}
}

// StatePanel renders a snapshot. Unknown kinds are shown as raw JSON.
func StatePanel(snap model.Snapshot) templ.Component {
	switch snap.Kind {
	case gomoku.Kind:
		var v gomokuView
		if err := json.Unmarshal(snap.Data, &v); err != nil {
			return failed(fmt.Errorf("render gomoku state: %w", err))
		}
		return statePanel(snap.Kind, gomokuBoard(v))
	case counter.Kind:
		var v counterView
		if err := json.Unmarshal(snap.Data, &v); err != nil {
			return failed(fmt.Errorf("render counter state: %w", err))
		}
		return statePanel(snap.Kind, counterValue(v.Num))
	default:
		return statePanel(snap.Kind, rawState(string(snap.Data)))
	}
}

func failed(err error) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error {
		return err
	})
}
