package game

import "fmt"

// Position is a cell coordinate on the board.
type Position struct {
	Row int
	Col int
}

// Offboard is the origin of a piece coming from a reserve.
var Offboard = Position{Row: -1, Col: -1}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// MoveKind distinguishes bringing a new piece in from relocating one on the board.
type MoveKind int

const (
	NewPiece MoveKind = iota
	Relocation
)

func (k MoveKind) String() string {
	switch k {
	case NewPiece:
		return "place"
	case Relocation:
		return "move"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k MoveKind) MarshalText() ([]byte, error) {
	if k != NewPiece && k != Relocation {
		return nil, fmt.Errorf("invalid move kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *MoveKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "place":
		*k = NewPiece
	case "move":
		*k = Relocation
	default:
		return fmt.Errorf("unknown move type %q", string(text))
	}
	return nil
}

// Move is a value produced by a strategy; From is Offboard iff Kind is NewPiece.
type Move struct {
	Kind  MoveKind
	Piece Piece
	From  Position
	To    Position
}

func NewPlacement(piece Piece, to Position) Move {
	return Move{Kind: NewPiece, Piece: piece, From: Offboard, To: to}
}

func NewRelocation(piece Piece, from, to Position) Move {
	return Move{Kind: Relocation, Piece: piece, From: from, To: to}
}

// Validate checks the move's shape without looking at any board.
func (m Move) Validate() error {
	if !m.Piece.Size.Valid() {
		return fmt.Errorf("%w: piece size %d", ErrMalformedMove, int(m.Piece.Size))
	}
	switch m.Kind {
	case NewPiece:
		if m.From != Offboard {
			return fmt.Errorf("%w: new placement with origin %s", ErrMalformedMove, m.From)
		}
	case Relocation:
		if m.From == Offboard {
			return fmt.Errorf("%w: relocation without origin", ErrMalformedMove)
		}
		if m.From == m.To {
			return fmt.Errorf("%w: relocation onto its own cell %s", ErrMalformedMove, m.To)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrMalformedMove, int(m.Kind))
	}
	return nil
}

func (m Move) String() string {
	if m.Kind == NewPiece {
		return fmt.Sprintf("place %s#%d at %s", m.Piece, m.Piece.ID, m.To)
	}
	return fmt.Sprintf("move %s#%d %s->%s", m.Piece, m.Piece.ID, m.From, m.To)
}
