package bot

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/codechallenge-go/internal/dependencies/random"
	"github.com/mcoot/codechallenge-go/internal/engine/counter"
	"github.com/mcoot/codechallenge-go/internal/engine/gomoku"
	"github.com/mcoot/codechallenge-go/internal/model"
)

// Strategy chooses a move from the STATE of a your-turn message.
// The returned value is marshalled as the MOVE of the reply.
type Strategy interface {
	ChooseMove(state json.RawMessage) (any, error)
}

// StrategyFor returns the random strategy for a game kind
func StrategyFor(kind string, rnd random.Random) (Strategy, error) {
	switch kind {
	case gomoku.Kind:
		return NewGomokuStrategy(rnd), nil
	case counter.Kind:
		return NewCounterStrategy(rnd), nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownGame, kind)
	}
}
