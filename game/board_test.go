package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func light(id int, size Size) Piece {
	return Piece{ID: id, Color: Light, Size: size}
}

func dark(id int, size Size) Piece {
	return Piece{ID: id, Color: Dark, Size: size}
}

func TestBoardPlace(t *testing.T) {
	t.Run("placing on an empty cell", func(t *testing.T) {
		board := NewBoard(4)

		ok := board.Place(light(1, Small), pos(1, 2), NewPiece)

		require.True(t, ok, "Empty cells accept any piece")
		top, found := board.Top(pos(1, 2))
		require.True(t, found)
		require.Equal(t, light(1, Small), top)
		require.False(t, board.IsEmpty(pos(1, 2)))
	})

	t.Run("placing out of range", func(t *testing.T) {
		board := NewBoard(4)

		for _, p := range []Position{pos(-1, 0), pos(0, -1), pos(4, 0), pos(0, 4)} {
			require.False(t, board.Place(light(1, Large), p, Relocation), "Should reject %s", p)
		}
	})

	t.Run("covering a smaller opponent piece by relocation", func(t *testing.T) {
		board := NewBoard(4)
		require.True(t, board.Place(dark(12, Small), pos(1, 1), NewPiece))

		ok := board.Place(light(6, Large), pos(1, 1), Relocation)

		require.True(t, ok, "Relocated pieces may cover any smaller opponent piece")
		require.Equal(t, []Piece{dark(12, Small), light(6, Large)}, board.Stack(pos(1, 1)))
	})

	t.Run("covering own color is rejected", func(t *testing.T) {
		board := NewBoard(4)
		require.True(t, board.Place(light(0, Small), pos(0, 0), NewPiece))

		require.False(t, board.Place(light(6, Large), pos(0, 0), Relocation))
		require.Equal(t, []Piece{light(0, Small)}, board.Stack(pos(0, 0)), "Board should be untouched")
	})

	t.Run("covering an equal or larger piece is rejected", func(t *testing.T) {
		board := NewBoard(4)
		require.True(t, board.Place(dark(15, Medium), pos(2, 2), NewPiece))

		require.False(t, board.Place(light(3, Medium), pos(2, 2), Relocation), "Equal size cannot cover")
		require.False(t, board.Place(light(0, Small), pos(2, 2), Relocation), "Smaller size cannot cover")
		require.Equal(t, []Piece{dark(15, Medium)}, board.Stack(pos(2, 2)))
	})
}

func TestBoardRemove(t *testing.T) {
	board := NewBoard(3)
	require.True(t, board.Place(dark(12, Small), pos(0, 0), NewPiece))
	require.True(t, board.Place(light(6, Large), pos(0, 0), Relocation))

	removed, ok := board.Remove(pos(0, 0))
	require.True(t, ok)
	require.Equal(t, light(6, Large), removed, "Should pop the top piece")
	top, _ := board.Top(pos(0, 0))
	require.Equal(t, dark(12, Small), top, "Covered piece becomes visible again")

	removed, ok = board.Remove(pos(0, 0))
	require.True(t, ok)
	require.Equal(t, dark(12, Small), removed)

	_, ok = board.Remove(pos(0, 0))
	require.False(t, ok, "Empty cell has nothing to remove")
}

func TestBoardIsFull(t *testing.T) {
	board := NewBoard(3)
	id := 0
	for _, p := range board.Positions() {
		require.False(t, board.IsFull())
		color := Light
		if (p.Row+p.Col)%2 == 1 {
			color = Dark
		}
		require.True(t, board.Place(Piece{ID: id, Color: color, Size: Small}, p, NewPiece))
		id++
	}
	require.True(t, board.IsFull())
}

func TestBoardClone(t *testing.T) {
	board := NewBoard(4)
	require.True(t, board.Place(dark(12, Small), pos(0, 0), NewPiece))
	require.True(t, board.Place(light(6, Large), pos(0, 0), Relocation))
	require.True(t, board.Place(dark(15, Medium), pos(3, 1), NewPiece))

	clone := board.Clone()

	require.Equal(t, board.String(), clone.String())
	for _, p := range board.Positions() {
		require.Equal(t, board.Stack(p), clone.Stack(p), "Stacks should match at %s", p)
	}

	clone.Remove(pos(0, 0))
	require.True(t, clone.Place(light(0, Small), pos(2, 2), NewPiece))

	top, _ := board.Top(pos(0, 0))
	require.Equal(t, light(6, Large), top, "Original should not see clone mutations")
	require.True(t, board.IsEmpty(pos(2, 2)))
}

func TestBoardLocate(t *testing.T) {
	board := NewBoard(4)
	require.True(t, board.Place(dark(12, Small), pos(2, 3), NewPiece))
	require.True(t, board.Place(light(6, Large), pos(2, 3), Relocation))

	at, ok := board.Locate(12)
	require.True(t, ok, "Covered pieces are still on the board")
	require.Equal(t, pos(2, 3), at)

	_, ok = board.Locate(99)
	require.False(t, ok)
}

func TestBoardTopPieces(t *testing.T) {
	board := NewBoard(4)
	require.True(t, board.Place(dark(12, Small), pos(0, 0), NewPiece))
	require.True(t, board.Place(light(6, Large), pos(0, 0), Relocation))
	require.True(t, board.Place(dark(13, Small), pos(1, 1), NewPiece))

	require.Equal(t, []Placed{{Piece: light(6, Large), At: pos(0, 0)}}, board.TopPieces(Light))
	require.Equal(t, []Placed{{Piece: dark(13, Small), At: pos(1, 1)}}, board.TopPieces(Dark),
		"Covered pieces are not movable")
}

func TestBoardString(t *testing.T) {
	board := NewBoard(3)
	require.True(t, board.Place(light(6, Large), pos(0, 0), NewPiece))
	require.True(t, board.Place(dark(12, Small), pos(2, 1), NewPiece))

	expected := "\n" +
		"--------------\n" +
		"L3 | -- | --\n" +
		"-- | -- | --\n" +
		"-- | D1 | --\n" +
		"--------------"
	require.Equal(t, expected, board.String())
}

func TestNewBoardPanicsOnInvalidSize(t *testing.T) {
	require.Panics(t, func() { NewBoard(0) })
}
