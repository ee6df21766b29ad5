package player

import (
	"testing"

	"gobblet/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func pos(row, col int) game.Position {
	return game.Position{Row: row, Col: col}
}

func piece(id int, color game.Color, size game.Size) game.Piece {
	return game.Piece{ID: id, Color: color, Size: size}
}

func put(t *testing.T, board *game.Board, p game.Piece, at game.Position) {
	t.Helper()
	require.True(t, board.Place(p, at, game.Relocation), "Fixture placement of %s at %s", p, at)
}

func newRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// lightReserveWithout returns the standard light reserve minus the given ids.
func lightReserveWithout(ids ...int) *game.Reserve {
	reserve := game.NewReserve(game.Light, 3, 0)
	for _, p := range reserve.Pieces() {
		for _, id := range ids {
			if p.ID == id {
				reserve.Take(p)
			}
		}
	}
	return reserve
}

func TestRegistry(t *testing.T) {
	t.Run("building every registered strategy", func(t *testing.T) {
		for _, name := range Names {
			s, err := New(name, game.Dark, newRng(1))
			require.NoError(t, err)
			require.Equal(t, name, s.Name())
			require.Equal(t, game.Dark, s.Color())
		}
	})

	t.Run("unknown strategy fails fast", func(t *testing.T) {
		_, err := New("minimax", game.Light, newRng(1))
		require.ErrorIs(t, err, ErrUnknownStrategy)
		require.ErrorIs(t, Validate("random", "nope"), ErrUnknownStrategy)
		require.NoError(t, Validate(Names...))
	})
}

func TestRandomChooseMove(t *testing.T) {
	board := game.NewBoard(3)
	put(t, board, piece(6, game.Light, game.Large), pos(1, 1))
	put(t, board, piece(12, game.Dark, game.Small), pos(0, 0))
	reserve := game.ReserveOf(piece(0, game.Light, game.Small))

	legal := game.LegalMoves(board, game.Light, reserve)
	require.Len(t, legal, 15, "7 new placements plus 8 relocations")

	t.Run("samples every legal move uniformly", func(t *testing.T) {
		const draws = 30000
		s := NewRandom(game.Light, newRng(42))
		counts := map[game.Move]int{}
		for range draws {
			move, err := s.ChooseMove(board, reserve)
			require.NoError(t, err)
			counts[move]++
		}

		require.Len(t, counts, len(legal), "Every legal move should be drawn")
		for _, move := range legal {
			freq := float64(counts[move]) / draws
			require.InDelta(t, 1.0/float64(len(legal)), freq, 0.01, "Frequency of %s", move)
		}
	})

	t.Run("same stream gives same moves", func(t *testing.T) {
		a := NewRandom(game.Light, newRng(9))
		b := NewRandom(game.Light, newRng(9))
		for range 50 {
			moveA, errA := a.ChooseMove(board, reserve)
			moveB, errB := b.ChooseMove(board, reserve)
			require.NoError(t, errA)
			require.NoError(t, errB)
			require.Equal(t, moveA, moveB)
		}
	})

	t.Run("no legal move", func(t *testing.T) {
		empty := game.NewBoard(3)
		s := NewRandom(game.Light, newRng(1))

		_, err := s.ChooseMove(empty, game.ReserveOf())
		require.ErrorIs(t, err, ErrNoLegalMove)
	})

	t.Run("panics without a stream", func(t *testing.T) {
		require.Panics(t, func() { NewRandom(game.Light, nil) })
	})
}

func TestGreedyChooseMove(t *testing.T) {
	t.Run("completing a line with a new piece", func(t *testing.T) {
		board := game.NewBoard(4)
		put(t, board, piece(0, game.Light, game.Small), pos(0, 0))
		put(t, board, piece(1, game.Light, game.Small), pos(0, 1))
		put(t, board, piece(2, game.Light, game.Small), pos(0, 2))

		move, err := NewGreedy(game.Light, newRng(1)).ChooseMove(board, lightReserveWithout(0, 1, 2))

		require.NoError(t, err)
		require.Equal(t, game.NewPlacement(piece(6, game.Light, game.Large), pos(0, 3)), move,
			"Largest reserve piece is tried first")
	})

	t.Run("completing a line by relocation", func(t *testing.T) {
		board := game.NewBoard(4)
		put(t, board, piece(0, game.Light, game.Small), pos(1, 0))
		put(t, board, piece(1, game.Light, game.Small), pos(1, 1))
		put(t, board, piece(2, game.Light, game.Small), pos(1, 2))
		put(t, board, piece(3, game.Light, game.Medium), pos(3, 3))

		move, err := NewGreedy(game.Light, newRng(1)).ChooseMove(board, game.ReserveOf())

		require.NoError(t, err)
		require.Equal(t, game.NewRelocation(piece(3, game.Light, game.Medium), pos(3, 3), pos(1, 3)), move)
	})

	t.Run("blocking the opponent's next placement", func(t *testing.T) {
		board := game.NewBoard(4)
		put(t, board, piece(12, game.Dark, game.Small), pos(1, 0))
		put(t, board, piece(13, game.Dark, game.Small), pos(1, 1))
		put(t, board, piece(14, game.Dark, game.Small), pos(1, 2))

		move, err := NewGreedy(game.Light, newRng(1)).ChooseMove(board, game.NewReserve(game.Light, 3, 0))

		require.NoError(t, err)
		require.Equal(t, game.NewPlacement(piece(6, game.Light, game.Large), pos(1, 3)), move)
	})

	t.Run("playing big and central", func(t *testing.T) {
		board := game.NewBoard(4)

		move, err := NewGreedy(game.Light, newRng(1)).ChooseMove(board, game.NewReserve(game.Light, 3, 0))

		require.NoError(t, err)
		require.Equal(t, game.NewPlacement(piece(6, game.Light, game.Large), pos(2, 2)), move)
	})

	t.Run("skipping an occupied center", func(t *testing.T) {
		board := game.NewBoard(4)
		put(t, board, piece(12, game.Dark, game.Small), pos(2, 2))

		move, err := NewGreedy(game.Light, newRng(1)).ChooseMove(board, game.NewReserve(game.Light, 3, 0))

		require.NoError(t, err)
		require.Equal(t, game.NewPlacement(piece(6, game.Light, game.Large), pos(1, 2)), move,
			"Next closest cell in row-major order")
	})

	t.Run("falling back to random without reserve", func(t *testing.T) {
		board := game.NewBoard(3)
		put(t, board, piece(6, game.Light, game.Large), pos(1, 1))

		a, errA := NewGreedy(game.Light, newRng(5)).ChooseMove(board, game.ReserveOf())
		b, errB := NewGreedy(game.Light, newRng(5)).ChooseMove(board, game.ReserveOf())

		require.NoError(t, errA)
		require.NoError(t, errB)
		require.Equal(t, game.Relocation, a.Kind)
		require.Contains(t, game.LegalMoves(board, game.Light, game.ReserveOf()), a)
		require.Equal(t, a, b, "Same stream should give the same fallback")
	})
}

func TestDefensiveChooseMove(t *testing.T) {
	t.Run("blocking with the smallest piece", func(t *testing.T) {
		board := game.NewBoard(4)
		put(t, board, piece(12, game.Dark, game.Small), pos(1, 0))
		put(t, board, piece(13, game.Dark, game.Small), pos(1, 1))
		put(t, board, piece(14, game.Dark, game.Small), pos(1, 2))

		move, err := NewDefensive(game.Light, newRng(1)).ChooseMove(board, game.NewReserve(game.Light, 3, 0))

		require.NoError(t, err)
		require.Equal(t, game.NewPlacement(piece(0, game.Light, game.Small), pos(1, 3)), move)
	})

	t.Run("seeing threats greedy does not", func(t *testing.T) {
		board := game.NewBoard(4)
		put(t, board, piece(12, game.Dark, game.Small), pos(0, 0))
		put(t, board, piece(13, game.Dark, game.Small), pos(0, 1))
		put(t, board, piece(14, game.Dark, game.Small), pos(0, 2))
		put(t, board, piece(0, game.Light, game.Small), pos(0, 3))
		reserve := lightReserveWithout(0)

		greedyMove, err := NewGreedy(game.Light, newRng(1)).ChooseMove(board, reserve)
		require.NoError(t, err)
		require.Equal(t, game.NewPlacement(piece(6, game.Light, game.Large), pos(2, 2)), greedyMove,
			"Greedy only tests the opponent's smallest new placement")

		defensiveMove, err := NewDefensive(game.Light, newRng(1)).ChooseMove(board, reserve)
		require.NoError(t, err)
		require.Equal(t, game.NewPlacement(piece(3, game.Light, game.Medium), pos(0, 0)), defensiveMove,
			"Smallest piece able to cover a member of the open three")
	})

	t.Run("winning beats blocking", func(t *testing.T) {
		board := game.NewBoard(4)
		put(t, board, piece(12, game.Dark, game.Small), pos(1, 0))
		put(t, board, piece(13, game.Dark, game.Small), pos(1, 1))
		put(t, board, piece(14, game.Dark, game.Small), pos(1, 2))
		put(t, board, piece(0, game.Light, game.Small), pos(3, 0))
		put(t, board, piece(1, game.Light, game.Small), pos(3, 1))
		put(t, board, piece(2, game.Light, game.Small), pos(3, 2))

		move, err := NewDefensive(game.Light, newRng(1)).ChooseMove(board, lightReserveWithout(0, 1, 2))

		require.NoError(t, err)
		require.Equal(t, game.NewPlacement(piece(6, game.Light, game.Large), pos(3, 3)), move)
	})
}

func TestStrategiesAreDeterministic(t *testing.T) {
	board := game.NewBoard(4)
	put(t, board, piece(12, game.Dark, game.Small), pos(0, 0))
	put(t, board, piece(15, game.Dark, game.Medium), pos(2, 1))
	put(t, board, piece(3, game.Light, game.Medium), pos(1, 1))
	put(t, board, piece(20, game.Dark, game.Large), pos(3, 3))
	reserve := lightReserveWithout(3)
	before := board.Clone()

	for _, name := range []string{"greedy", "defensive"} {
		t.Run(name, func(t *testing.T) {
			first, err := New(name, game.Light, newRng(1))
			require.NoError(t, err)
			second, err := New(name, game.Light, newRng(99))
			require.NoError(t, err)

			moveA, err := first.ChooseMove(board, reserve)
			require.NoError(t, err)
			moveB, err := second.ChooseMove(board, reserve)
			require.NoError(t, err)

			require.Equal(t, moveA, moveB, "Identical inputs should give identical moves")
			require.Equal(t, before.String(), board.String(), "Board must not be mutated")
			for _, p := range board.Positions() {
				require.Equal(t, before.Stack(p), board.Stack(p))
			}
			require.Equal(t, 8, reserve.Len(), "Reserve must not be mutated")
		})
	}
}
