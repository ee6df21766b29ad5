package game

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange          = errors.New("position out of range")
	ErrOccupiedBySameColor = errors.New("cannot cover a piece of the same color")
	ErrTooSmall            = errors.New("piece must be strictly larger than the piece it covers")
	ErrCoverNotAllowed     = errors.New("a new piece may only cover a piece that is part of an open three")
	ErrMalformedMove       = errors.New("malformed move")
	ErrNotAtOrigin         = errors.New("piece is not on top of its origin")
)

// OpenThree is the exact number of same-colored tops on a line that lets a
// new piece cover one of them.
const OpenThree = 3

// Placement is the result of applying a move to a board.
type Placement struct {
	Move     Move
	Captured Piece
	Covered  bool // Captured is set
}

func (b *Board) checkPlacement(color Color, size Size, pos Position, kind MoveKind) error {
	if !b.InRange(pos) {
		return fmt.Errorf("%w: %s", ErrOutOfRange, pos)
	}
	top, ok := b.Top(pos)
	if !ok {
		return nil
	}
	if top.Color == color {
		return fmt.Errorf("%w: %s at %s", ErrOccupiedBySameColor, top, pos)
	}
	if size <= top.Size {
		return fmt.Errorf("%w: size %d over %s at %s", ErrTooSmall, int(size), top, pos)
	}
	if kind == NewPiece && !b.IsOpenThree(pos, color.Opponent()) {
		return fmt.Errorf("%w: %s at %s", ErrCoverNotAllowed, top, pos)
	}
	return nil
}

// LinesThrough returns the row, the column and any main diagonal through pos.
func (b *Board) LinesThrough(pos Position) [][]Position {
	n := b.size
	row := make([]Position, 0, n)
	col := make([]Position, 0, n)
	for i := range n {
		row = append(row, Position{Row: pos.Row, Col: i})
		col = append(col, Position{Row: i, Col: pos.Col})
	}
	lines := [][]Position{row, col}
	if pos.Row == pos.Col {
		lines = append(lines, b.diagonal())
	}
	if pos.Row+pos.Col == n-1 {
		lines = append(lines, b.antiDiagonal())
	}
	return lines
}

func (b *Board) diagonal() []Position {
	line := make([]Position, 0, b.size)
	for i := range b.size {
		line = append(line, Position{Row: i, Col: i})
	}
	return line
}

func (b *Board) antiDiagonal() []Position {
	line := make([]Position, 0, b.size)
	for i := range b.size {
		line = append(line, Position{Row: i, Col: b.size - 1 - i})
	}
	return line
}

// lines returns every winning line: rows, then columns, then both diagonals.
func (b *Board) lines() [][]Position {
	lines := make([][]Position, 0, 2*b.size+2)
	for row := range b.size {
		line := make([]Position, 0, b.size)
		for col := range b.size {
			line = append(line, Position{Row: row, Col: col})
		}
		lines = append(lines, line)
	}
	for col := range b.size {
		line := make([]Position, 0, b.size)
		for row := range b.size {
			line = append(line, Position{Row: row, Col: col})
		}
		lines = append(lines, line)
	}
	return append(lines, b.diagonal(), b.antiDiagonal())
}

func (b *Board) countTops(line []Position, color Color) int {
	count := 0
	for _, pos := range line {
		if top, ok := b.Top(pos); ok && top.Color == color {
			count++
		}
	}
	return count
}

// IsOpenThree reports whether the top of pos belongs to color and lies on a
// line with exactly OpenThree tops of that color.
func (b *Board) IsOpenThree(pos Position, color Color) bool {
	top, ok := b.Top(pos)
	if !ok || top.Color != color {
		return false
	}
	for _, line := range b.LinesThrough(pos) {
		if b.countTops(line, color) == OpenThree {
			return true
		}
	}
	return false
}

// CheckWinner returns the color owning every top of a full line. Lines are
// scanned rows first, then columns, then the two diagonals.
func (b *Board) CheckWinner() (Color, bool) {
	for _, line := range b.lines() {
		first, ok := b.Top(line[0])
		if !ok {
			continue
		}
		if b.countTops(line, first.Color) == len(line) {
			return first.Color, true
		}
	}
	return 0, false
}

// LegalNewPlacements lists, row-major, where a new piece may enter.
func (b *Board) LegalNewPlacements(color Color, size Size) []Position {
	return b.legalTargets(color, size, NewPiece)
}

// LegalRelocations lists, row-major, where a piece already on the board may go.
// The piece's own cell is excluded because its top is the piece itself.
func (b *Board) LegalRelocations(color Color, size Size) []Position {
	return b.legalTargets(color, size, Relocation)
}

func (b *Board) legalTargets(color Color, size Size, kind MoveKind) []Position {
	var targets []Position
	for _, pos := range b.Positions() {
		if b.checkPlacement(color, size, pos, kind) == nil {
			targets = append(targets, pos)
		}
	}
	return targets
}

// Apply validates and performs a move. A relocation is atomic: if the piece
// cannot land on its destination it goes back to its origin.
func (b *Board) Apply(m Move) (Placement, error) {
	if err := m.Validate(); err != nil {
		return Placement{}, err
	}
	result := Placement{Move: m}
	if m.Kind == Relocation {
		if !b.InRange(m.From) {
			return Placement{}, fmt.Errorf("%w: origin %s", ErrOutOfRange, m.From)
		}
		if top, ok := b.Top(m.From); !ok || top != m.Piece {
			return Placement{}, fmt.Errorf("%w: %s#%d at %s", ErrNotAtOrigin, m.Piece, m.Piece.ID, m.From)
		}
	}
	if top, ok := b.Top(m.To); ok {
		result.Captured, result.Covered = top, true
	}

	if m.Kind == NewPiece {
		if err := b.place(m.Piece, m.To, NewPiece); err != nil {
			return Placement{}, err
		}
		return result, nil
	}

	lifted, _ := b.Remove(m.From)
	if err := b.place(lifted, m.To, Relocation); err != nil {
		if restoreErr := b.place(lifted, m.From, Relocation); restoreErr != nil {
			panic(fmt.Sprintf("failed to restore %s to %s: %v", lifted, m.From, restoreErr))
		}
		return Placement{}, err
	}
	return result, nil
}
