package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/codechallenge-go/internal/engine/counter"
	"github.com/mcoot/codechallenge-go/internal/engine/gomoku"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printf("Status: %s\n", v.Status)
	case Info:
		o.printInfo(v)
	case State:
		o.printState(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// Player response type (matches API)
type Player struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Info response type
type Info struct {
	Players   []Player          `json:"players"`
	Mode      string            `json:"mode"`
	Scores    map[string]uint64 `json:"scores"`
	Ranking   []string          `json:"ranking"`
	TurnDelay string            `json:"turn_delay"`
	WinDelay  string            `json:"win_delay"`
}

// State response type
type State struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

func (o *Output) printInfo(i Info) {
	o.printf("Mode: %s\n", i.Mode)
	o.printf("Turn delay: %s\n", i.TurnDelay)
	o.printf("Win delay: %s\n", i.WinDelay)
	o.printf("Players (%d):\n", len(i.Players))
	for _, p := range i.Players {
		o.printf("  %s %s\n", p.Color, p.Name)
	}
	if len(i.Ranking) > 0 {
		o.printf("Scores:\n")
		for n, name := range i.Ranking {
			o.printf("  %d. %s: %d\n", n+1, name, i.Scores[name])
		}
	}
}

type boardView struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  []string `json:"cells"`
	Winner *struct {
		Name string `json:"name"`
	} `json:"winner"`
	Draw bool `json:"draw"`
}

func (o *Output) printState(s State) {
	switch s.Kind {
	case gomoku.Kind:
		var b boardView
		if err := json.Unmarshal(s.Data, &b); err == nil {
			o.printBoard(b)
			return
		}
	case counter.Kind:
		var c struct {
			Num uint64 `json:"num"`
		}
		if err := json.Unmarshal(s.Data, &c); err == nil {
			o.printf("Counter: %d\n", c.Num)
			return
		}
	}
	o.printf("%s: %s\n", s.Kind, string(s.Data))
}

// printBoard draws one character per cell with a legend of players
func (o *Output) printBoard(b boardView) {
	marks := map[string]rune{}
	var legend []string
	next := 'A'

	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			i := y*b.Width + x
			if i >= len(b.Cells) || b.Cells[i] == "" {
				sb.WriteRune('.')
				continue
			}
			name := b.Cells[i]
			m, ok := marks[name]
			if !ok {
				m = next
				marks[name] = m
				legend = append(legend, fmt.Sprintf("%c=%s", m, name))
				if next < 'Z' {
					next++
				}
			}
			sb.WriteRune(m)
		}
		sb.WriteByte('\n')
	}
	o.printf("%s", sb.String())
	if len(legend) > 0 {
		o.printf("%s\n", strings.Join(legend, " "))
	}
	switch {
	case b.Winner != nil:
		o.printf("Winner: %s\n", b.Winner.Name)
	case b.Draw:
		o.printf("Draw\n")
	}
}
