package game

import (
	"sort"

	"gobblet/utils"
)

// Reserve holds a side's pieces that have not yet entered the board.
type Reserve struct {
	pieces []Piece
}

// NewReserve creates perSize pieces of every size, numbering ids from firstID.
func NewReserve(color Color, perSize, firstID int) *Reserve {
	r := &Reserve{pieces: make([]Piece, 0, perSize*len(Sizes))}
	id := firstID
	for _, size := range Sizes {
		for range perSize {
			r.pieces = append(r.pieces, Piece{ID: id, Color: color, Size: size})
			id++
		}
	}
	return r
}

func ReserveOf(pieces ...Piece) *Reserve {
	return &Reserve{pieces: append([]Piece(nil), pieces...)}
}

func (r *Reserve) Len() int {
	return len(r.pieces)
}

// Pieces returns a copy in insertion order.
func (r *Reserve) Pieces() []Piece {
	return append([]Piece(nil), r.pieces...)
}

// BySizeDescending returns a copy ordered largest first, ties by id.
func (r *Reserve) BySizeDescending() []Piece {
	pieces := r.Pieces()
	sort.SliceStable(pieces, func(i, j int) bool {
		if pieces[i].Size != pieces[j].Size {
			return pieces[i].Size > pieces[j].Size
		}
		return pieces[i].ID < pieces[j].ID
	})
	return pieces
}

// BySizeAscending returns a copy ordered smallest first, ties by id.
func (r *Reserve) BySizeAscending() []Piece {
	pieces := r.Pieces()
	sort.SliceStable(pieces, func(i, j int) bool {
		if pieces[i].Size != pieces[j].Size {
			return pieces[i].Size < pieces[j].Size
		}
		return pieces[i].ID < pieces[j].ID
	})
	return pieces
}

func (r *Reserve) Contains(piece Piece) bool {
	return utils.FindIndex(r.pieces, piece) >= 0
}

// Take removes the piece from the reserve.
func (r *Reserve) Take(piece Piece) bool {
	i := utils.FindIndex(r.pieces, piece)
	if i < 0 {
		return false
	}
	r.pieces = append(r.pieces[:i], r.pieces[i+1:]...)
	return true
}

func (r *Reserve) Clone() *Reserve {
	return ReserveOf(r.pieces...)
}
