package player

import (
	"gobblet/game"

	"golang.org/x/exp/rand"
)

type random struct {
	color game.Color
	rng   *rand.Rand
}

// NewRandom returns a strategy that samples uniformly from every legal move.
func NewRandom(color game.Color, rng *rand.Rand) Strategy {
	if rng == nil {
		panic("random strategy needs a random stream")
	}
	return &random{color: color, rng: rng}
}

func (r *random) Name() string {
	return "random"
}

func (r *random) Color() game.Color {
	return r.color
}

// ChooseMove materializes the full legal move set before drawing, so every
// move has the same probability.
func (r *random) ChooseMove(board game.View, reserve *game.Reserve) (game.Move, error) {
	moves := game.LegalMoves(board, r.color, reserve)
	if len(moves) == 0 {
		return game.Move{}, ErrNoLegalMove
	}
	return moves[r.rng.Intn(len(moves))], nil
}
