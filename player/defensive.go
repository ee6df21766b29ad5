package player

import (
	"gobblet/game"

	"golang.org/x/exp/rand"
)

type defensive struct {
	color    game.Color
	fallback Strategy
}

// NewDefensive returns a strategy that shares Greedy's win check and fallback
// but treats a cell as threatened if an opponent piece of any size could win
// there.
func NewDefensive(color game.Color, rng *rand.Rand) Strategy {
	return &defensive{color: color, fallback: NewRandom(color, rng)}
}

func (d *defensive) Name() string {
	return "defensive"
}

func (d *defensive) Color() game.Color {
	return d.color
}

func (d *defensive) ChooseMove(board game.View, reserve *game.Reserve) (game.Move, error) {
	if move, ok := findWinningMove(board, reserve, d.color); ok {
		return move, nil
	}
	if move, ok := d.findBlockingMove(board, reserve); ok {
		return move, nil
	}
	return strategicMove(board, reserve, d.color, d.fallback)
}

// anySizeWins tries every size of opponent piece arriving on pos.
func anySizeWins(board game.View, pos game.Position, opponent game.Color) bool {
	for _, size := range game.Sizes {
		probe := game.Piece{ID: probeID, Color: opponent, Size: size}
		after := board.Clone()
		if !after.Place(probe, pos, game.Relocation) {
			continue
		}
		if winner, won := after.CheckWinner(); won && winner == opponent {
			return true
		}
	}
	return false
}

// blockTargets lists the threatened cell followed by every opponent piece on a
// line through it that a new piece is allowed to cover.
func blockTargets(board game.View, pos game.Position, opponent game.Color) []game.Position {
	targets := []game.Position{pos}
	seen := map[game.Position]bool{pos: true}
	for _, line := range board.LinesThrough(pos) {
		for _, cell := range line {
			if !seen[cell] && board.IsOpenThree(cell, opponent) {
				seen[cell] = true
				targets = append(targets, cell)
			}
		}
	}
	return targets
}

// findBlockingMove covers the first threatened cell, or a member of the open
// three behind it, with the smallest reserve piece allowed to land there.
// Failing that it relocates its smallest visible piece onto a target, unless
// lifting it hands the opponent a win.
func (d *defensive) findBlockingMove(board game.View, reserve *game.Reserve) (game.Move, bool) {
	opponent := d.color.Opponent()
	for _, pos := range board.Positions() {
		if !anySizeWins(board, pos, opponent) {
			continue
		}
		targets := blockTargets(board, pos, opponent)
		for _, target := range targets {
			for _, piece := range distinctSizes(reserve.BySizeAscending()) {
				move := game.NewPlacement(piece, target)
				if _, ok := hypothetical(board, move); ok {
					return move, true
				}
			}
		}
		for _, target := range targets {
			for _, size := range game.Sizes {
				for _, placed := range board.TopPieces(d.color) {
					if placed.Piece.Size != size || placed.At == target {
						continue
					}
					move := game.NewRelocation(placed.Piece, placed.At, target)
					after, ok := hypothetical(board, move)
					if !ok {
						continue
					}
					if winner, won := after.CheckWinner(); won && winner == opponent {
						continue
					}
					return move, true
				}
			}
		}
	}
	return game.Move{}, false
}
