package gomoku

import (
	"encoding/json"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// WinLength is the number of contiguous stones needed to win
const WinLength = 5

// scanReach is how far the win scan looks each way from the placed stone
const scanReach = WinLength - 1

// Position identifies a cell on the board
type Position struct {
	X int `json:"x"` // 0-indexed from left
	Y int `json:"y"` // 0-indexed from top
}

// Line is a winning run, from First to Last inclusive
type Line struct {
	First Position `json:"first"`
	Last  Position `json:"last"`
}

// Cell is a board square, empty when Owner is nil
type Cell struct {
	Owner *model.User
}

// MarshalJSON encodes a cell as "empty" or {"occupied":"name"}
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Owner == nil {
		return json.Marshal("empty")
	}
	return json.Marshal(map[string]string{"occupied": c.Owner.Name})
}

// Board is a Width x Height grid stored row-major
type Board struct {
	Width  int
	Height int
	cells  []Cell
}

// NewBoard creates an empty board
func NewBoard(width, height int) *Board {
	return &Board{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < b.Width && pos.Y < b.Height
}

// At returns the cell at pos, and false if pos is out of bounds
func (b *Board) At(pos Position) (Cell, bool) {
	if !b.IsValidPosition(pos) {
		return Cell{}, false
	}
	return b.cells[pos.Y*b.Width+pos.X], true
}

// ownerAt returns the owner name at pos, or "" for empty and out of bounds
func (b *Board) ownerAt(pos Position) string {
	cell, ok := b.At(pos)
	if !ok || cell.Owner == nil {
		return ""
	}
	return cell.Owner.Name
}

// Place puts user's stone at pos. It returns model.ErrInvalidMove if pos
// is out of bounds or occupied; otherwise the winning line through pos, if any.
func (b *Board) Place(user model.User, pos Position) (*Line, error) {
	cell, ok := b.At(pos)
	if !ok || cell.Owner != nil {
		return nil, model.ErrInvalidMove
	}
	owner := user
	b.cells[pos.Y*b.Width+pos.X] = Cell{Owner: &owner}
	return b.winningLineThrough(pos), nil
}

// orientations are the four line directions scanned through a placed stone:
// vertical, falling diagonal, horizontal and rising diagonal
var orientations = [4]Position{
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: 1, Y: 0},
	{X: 1, Y: -1},
}

// winningLineThrough scans a window of scanReach cells each side of pos in
// every orientation and returns the first run of WinLength or more stones
// with the same owner.
func (b *Board) winningLineThrough(pos Position) *Line {
	for _, dir := range orientations {
		window := make([]Position, 0, 2*scanReach+1)
		for k := -scanReach; k <= scanReach; k++ {
			window = append(window, Position{X: pos.X + k*dir.X, Y: pos.Y + k*dir.Y})
		}
		if line, ok := b.longestRun(window); ok {
			return &line
		}
	}
	return nil
}

// longestRun groups contiguous equal owners in window and reports a run
// that reaches WinLength
func (b *Board) longestRun(window []Position) (Line, bool) {
	start := 0
	for i := 1; i <= len(window); i++ {
		if i < len(window) && b.ownerAt(window[i]) == b.ownerAt(window[start]) {
			continue
		}
		if b.ownerAt(window[start]) != "" && i-start >= WinLength {
			return Line{First: window[start], Last: window[i-1]}, true
		}
		start = i
	}
	return Line{}, false
}

// IsFull returns true if no empty cells remain
func (b *Board) IsFull() bool {
	for _, c := range b.cells {
		if c.Owner == nil {
			return false
		}
	}
	return true
}

// EmptyPositions returns every empty cell in row-major order
func (b *Board) EmptyPositions() []Position {
	var out []Position
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.cells[y*b.Width+x].Owner == nil {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

// MarshalJSON encodes the board as sent to players
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Cells  []Cell `json:"cells"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}{
		Cells:  b.cells,
		Width:  b.Width,
		Height: b.Height,
	})
}
