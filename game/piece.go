package game

import "fmt"

// Color identifies one of the two sides.
type Color int

const (
	Light Color = iota
	Dark
)

// Colors lists both sides in turn order.
var Colors = []Color{Light, Dark}

func (c Color) Opponent() Color {
	if c == Light {
		return Dark
	}
	return Light
}

func (c Color) String() string {
	switch c {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// Initial is the single letter used in board renderings.
func (c Color) Initial() string {
	if c == Light {
		return "L"
	}
	return "D"
}

func (c Color) MarshalText() ([]byte, error) {
	if c != Light && c != Dark {
		return nil, fmt.Errorf("invalid color %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return 0, fmt.Errorf("unknown color %q", s)
	}
}

// Size is the ordinal size of a piece. Larger pieces may cover smaller ones.
type Size int

const (
	Small  Size = 1
	Medium Size = 2
	Large  Size = 3
)

// Sizes lists every size in ascending order.
var Sizes = []Size{Small, Medium, Large}

func (s Size) Valid() bool {
	return s >= Small && s <= Large
}

// Piece is immutable once created; its location is only known to the Board.
type Piece struct {
	ID    int
	Color Color
	Size  Size
}

// CanCover reports whether p is strictly larger than other.
func (p Piece) CanCover(other Piece) bool {
	return p.Size > other.Size
}

func (p Piece) String() string {
	return fmt.Sprintf("%s%d", p.Color.Initial(), int(p.Size))
}
