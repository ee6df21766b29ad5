package player

import (
	"errors"
	"fmt"

	"gobblet/game"
	"gobblet/utils"

	"golang.org/x/exp/rand"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrNoLegalMove     = errors.New("no legal move available")
)

// Strategy chooses the next move for one side. Implementations must not
// mutate the board or the reserve they are given.
type Strategy interface {
	Name() string
	Color() game.Color
	ChooseMove(board game.View, reserve *game.Reserve) (game.Move, error)
}

// Factory builds a strategy drawing randomness only from rng.
type Factory func(color game.Color, rng *rand.Rand) Strategy

// Names lists the available strategies in registration order.
var Names = []string{"random", "greedy", "defensive"}

var factories = map[string]Factory{
	"random":    NewRandom,
	"greedy":    NewGreedy,
	"defensive": NewDefensive,
}

// New builds the named strategy.
func New(name string, color game.Color, rng *rand.Rand) (Strategy, error) {
	if err := Validate(name); err != nil {
		return nil, err
	}
	return factories[name](color, rng), nil
}

// Validate fails on the first name that is not registered.
func Validate(names ...string) error {
	for _, name := range names {
		if utils.FindIndex(Names, name) < 0 {
			return fmt.Errorf("%w: %q (available: %v)", ErrUnknownStrategy, name, Names)
		}
	}
	return nil
}

// probeID marks pieces that only exist on hypothetical boards.
const probeID = -1

// hypothetical applies move to a clone of board. The real board is never touched.
func hypothetical(board game.View, move game.Move) (*game.Board, bool) {
	clone := board.Clone()
	if _, err := clone.Apply(move); err != nil {
		return nil, false
	}
	return clone, true
}

func winsFor(board game.View, move game.Move, color game.Color) bool {
	after, ok := hypothetical(board, move)
	if !ok {
		return false
	}
	winner, won := after.CheckWinner()
	return won && winner == color
}

// distinctSizes keeps the first piece of each size, preserving order.
func distinctSizes(pieces []game.Piece) []game.Piece {
	seen := map[game.Size]bool{}
	kept := make([]game.Piece, 0, len(game.Sizes))
	for _, piece := range pieces {
		if !seen[piece.Size] {
			seen[piece.Size] = true
			kept = append(kept, piece)
		}
	}
	return kept
}

// candidatesAt lists moves of color that end on to: new pieces largest first,
// then relocations of visible pieces in row-major order.
func candidatesAt(board game.View, reserve *game.Reserve, color game.Color, to game.Position) []game.Move {
	var moves []game.Move
	for _, piece := range distinctSizes(reserve.BySizeDescending()) {
		moves = append(moves, game.NewPlacement(piece, to))
	}
	for _, placed := range board.TopPieces(color) {
		if placed.At != to {
			moves = append(moves, game.NewRelocation(placed.Piece, placed.At, to))
		}
	}
	return moves
}

// findWinningMove returns the first candidate, scanning cells row-major, that
// wins immediately for color.
func findWinningMove(board game.View, reserve *game.Reserve, color game.Color) (game.Move, bool) {
	for _, to := range board.Positions() {
		for _, move := range candidatesAt(board, reserve, color, to) {
			if winsFor(board, move, color) {
				return move, true
			}
		}
	}
	return game.Move{}, false
}

// centerFirst orders cells by Manhattan distance to the center, ties row-major.
func centerFirst(board game.View) []game.Position {
	center := board.Size() / 2
	distance := func(p game.Position) int {
		return abs(p.Row-center) + abs(p.Col-center)
	}
	var ordered []game.Position
	for d := 0; d <= 2*board.Size(); d++ {
		for _, p := range board.Positions() {
			if distance(p) == d {
				ordered = append(ordered, p)
			}
		}
	}
	return ordered
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// strategicMove places the largest reserve piece as close to the center as the
// rules allow, and defers to fallback when no new placement is legal.
func strategicMove(board game.View, reserve *game.Reserve, color game.Color, fallback Strategy) (game.Move, error) {
	cells := centerFirst(board)
	for _, piece := range distinctSizes(reserve.BySizeDescending()) {
		legal := map[game.Position]bool{}
		for _, p := range board.LegalNewPlacements(color, piece.Size) {
			legal[p] = true
		}
		for _, p := range cells {
			if legal[p] {
				return game.NewPlacement(piece, p), nil
			}
		}
	}
	return fallback.ChooseMove(board, reserve)
}
