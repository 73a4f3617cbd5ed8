package bot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcoot/codechallenge-go/internal/dependencies/random"
	"github.com/mcoot/codechallenge-go/internal/engine/counter"
	"github.com/mcoot/codechallenge-go/internal/engine/gomoku"
)

// MaxCounterAdd bounds what the counter bot adds per turn
const MaxCounterAdd = 10

var errBoardFull = errors.New("no empty cell")

type gomokuState struct {
	Cells  []json.RawMessage `json:"cells"`
	Width  int               `json:"width"`
	Height int               `json:"height"`
}

// GomokuStrategy places on a random empty cell
type GomokuStrategy struct {
	random random.Random
}

// NewGomokuStrategy creates a GomokuStrategy
func NewGomokuStrategy(rnd random.Random) *GomokuStrategy {
	return &GomokuStrategy{random: rnd}
}

func (s *GomokuStrategy) ChooseMove(state json.RawMessage) (any, error) {
	var board gomokuState
	if err := json.Unmarshal(state, &board); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	if board.Width <= 0 || len(board.Cells) != board.Width*board.Height {
		return nil, fmt.Errorf("decode board: %d cells for %dx%d", len(board.Cells), board.Width, board.Height)
	}

	var empty []int
	for i, c := range board.Cells {
		var tag string
		if json.Unmarshal(c, &tag) == nil && tag == "empty" {
			empty = append(empty, i)
		}
	}
	if len(empty) == 0 {
		return nil, errBoardFull
	}

	i := empty[s.random.Intn(len(empty))]
	return gomoku.NewMove(i%board.Width, i/board.Width), nil
}

// CounterStrategy adds a random amount below MaxCounterAdd
type CounterStrategy struct {
	random random.Random
}

// NewCounterStrategy creates a CounterStrategy
func NewCounterStrategy(rnd random.Random) *CounterStrategy {
	return &CounterStrategy{random: rnd}
}

func (s *CounterStrategy) ChooseMove(json.RawMessage) (any, error) {
	return counter.NewMove(int64(s.random.Intn(MaxCounterAdd))), nil
}
