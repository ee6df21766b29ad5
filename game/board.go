package game

import (
	"strings"
)

// View is the read-only surface of a Board handed to strategies.
type View interface {
	Size() int
	InRange(pos Position) bool
	Top(pos Position) (Piece, bool)
	Stack(pos Position) []Piece
	Positions() []Position
	TopPieces(color Color) []Placed
	Locate(id int) (Position, bool)
	CheckWinner() (Color, bool)
	IsFull() bool
	LinesThrough(pos Position) [][]Position
	IsOpenThree(pos Position, color Color) bool
	LegalNewPlacements(color Color, size Size) []Position
	LegalRelocations(color Color, size Size) []Position
	Clone() *Board
	String() string
}

// Placed is a piece visible on top of a cell.
type Placed struct {
	Piece Piece
	At    Position
}

// Board is an NxN grid of stacks. Each stack is ordered bottom to top and its
// sizes strictly increase upwards; Place is the only way a piece gets pushed.
type Board struct {
	size  int
	cells [][]Piece
}

func NewBoard(size int) *Board {
	if size < 1 {
		panic("board size must be positive")
	}
	return &Board{
		size:  size,
		cells: make([][]Piece, size*size),
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InRange(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.size && pos.Col >= 0 && pos.Col < b.size
}

func (b *Board) index(pos Position) int {
	return pos.Row*b.size + pos.Col
}

// Top returns the visible piece of a cell.
func (b *Board) Top(pos Position) (Piece, bool) {
	if !b.InRange(pos) {
		return Piece{}, false
	}
	stack := b.cells[b.index(pos)]
	if len(stack) == 0 {
		return Piece{}, false
	}
	return stack[len(stack)-1], true
}

// Stack returns a copy of a cell's pieces, bottom first.
func (b *Board) Stack(pos Position) []Piece {
	if !b.InRange(pos) {
		return nil
	}
	return append([]Piece(nil), b.cells[b.index(pos)]...)
}

func (b *Board) IsEmpty(pos Position) bool {
	_, ok := b.Top(pos)
	return b.InRange(pos) && !ok
}

// Positions lists every cell in row-major order.
func (b *Board) Positions() []Position {
	positions := make([]Position, 0, b.size*b.size)
	for row := range b.size {
		for col := range b.size {
			positions = append(positions, Position{Row: row, Col: col})
		}
	}
	return positions
}

// Place pushes piece onto pos. It reports false, leaving the board untouched,
// when the placement breaks a rule.
func (b *Board) Place(piece Piece, pos Position, kind MoveKind) bool {
	return b.place(piece, pos, kind) == nil
}

func (b *Board) place(piece Piece, pos Position, kind MoveKind) error {
	if err := b.checkPlacement(piece.Color, piece.Size, pos, kind); err != nil {
		return err
	}
	i := b.index(pos)
	b.cells[i] = append(b.cells[i], piece)
	return nil
}

// Remove pops the top piece of pos.
func (b *Board) Remove(pos Position) (Piece, bool) {
	top, ok := b.Top(pos)
	if !ok {
		return Piece{}, false
	}
	i := b.index(pos)
	b.cells[i] = b.cells[i][:len(b.cells[i])-1]
	return top, true
}

// Locate scans the board for a piece, covered or not.
func (b *Board) Locate(id int) (Position, bool) {
	for _, pos := range b.Positions() {
		for _, piece := range b.cells[b.index(pos)] {
			if piece.ID == id {
				return pos, true
			}
		}
	}
	return Offboard, false
}

// TopPieces returns the visible pieces of a color in row-major order.
func (b *Board) TopPieces(color Color) []Placed {
	var placed []Placed
	for _, pos := range b.Positions() {
		if top, ok := b.Top(pos); ok && top.Color == color {
			placed = append(placed, Placed{Piece: top, At: pos})
		}
	}
	return placed
}

func (b *Board) IsFull() bool {
	for _, stack := range b.cells {
		if len(stack) == 0 {
			return false
		}
	}
	return true
}

func (b *Board) Clone() *Board {
	clone := NewBoard(b.size)
	for i, stack := range b.cells {
		if len(stack) > 0 {
			clone.cells[i] = append(make([]Piece, 0, len(stack)), stack...)
		}
	}
	return clone
}

// String renders the top of every cell, e.g. "L3 | -- | D1".
func (b *Board) String() string {
	rows := make([]string, 0, b.size)
	for row := range b.size {
		cells := make([]string, 0, b.size)
		for col := range b.size {
			if top, ok := b.Top(Position{Row: row, Col: col}); ok {
				cells = append(cells, top.String())
			} else {
				cells = append(cells, "--")
			}
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	rule := strings.Repeat("-", b.size*5-1)
	return "\n" + rule + "\n" + strings.Join(rows, "\n") + "\n" + rule
}
