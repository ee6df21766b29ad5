package player

import (
	"gobblet/game"

	"golang.org/x/exp/rand"
)

type greedy struct {
	color    game.Color
	fallback Strategy
}

// NewGreedy returns a one-ply strategy: win if possible, otherwise block the
// opponent's next placement, otherwise play big and central.
func NewGreedy(color game.Color, rng *rand.Rand) Strategy {
	return &greedy{color: color, fallback: NewRandom(color, rng)}
}

func (g *greedy) Name() string {
	return "greedy"
}

func (g *greedy) Color() game.Color {
	return g.color
}

func (g *greedy) ChooseMove(board game.View, reserve *game.Reserve) (game.Move, error) {
	if move, ok := findWinningMove(board, reserve, g.color); ok {
		return move, nil
	}
	if move, ok := g.findBlockingMove(board, reserve); ok {
		return move, nil
	}
	return strategicMove(board, reserve, g.color, g.fallback)
}

// nextPlacementWins reports whether the opponent wins by placing the smallest
// new piece that could legally land on pos.
func nextPlacementWins(board game.View, pos game.Position, opponent game.Color) bool {
	size := game.Small
	if top, ok := board.Top(pos); ok {
		size = top.Size + 1
	}
	if !size.Valid() {
		return false
	}
	probe := game.Piece{ID: probeID, Color: opponent, Size: size}
	return winsFor(board, game.NewPlacement(probe, pos), opponent)
}

func (g *greedy) findBlockingMove(board game.View, reserve *game.Reserve) (game.Move, bool) {
	opponent := g.color.Opponent()
	for _, pos := range board.Positions() {
		if !nextPlacementWins(board, pos, opponent) {
			continue
		}
		for _, move := range candidatesAt(board, reserve, g.color, pos) {
			after, ok := hypothetical(board, move)
			if !ok {
				continue
			}
			if winner, won := after.CheckWinner(); won && winner == opponent {
				continue
			}
			if !nextPlacementWins(after, pos, opponent) {
				return move, true
			}
		}
	}
	return game.Move{}, false
}
