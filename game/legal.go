package game

// LegalMoves enumerates every move available to color: new placements for each
// reserve piece, in reserve order, followed by relocations of each visible
// piece of that color, in row-major order.
func LegalMoves(board View, color Color, reserve *Reserve) []Move {
	var moves []Move
	if reserve != nil {
		for _, piece := range reserve.Pieces() {
			if piece.Color != color {
				continue
			}
			for _, to := range board.LegalNewPlacements(color, piece.Size) {
				moves = append(moves, NewPlacement(piece, to))
			}
		}
	}
	for _, placed := range board.TopPieces(color) {
		for _, to := range board.LegalRelocations(color, placed.Piece.Size) {
			moves = append(moves, NewRelocation(placed.Piece, placed.At, to))
		}
	}
	return moves
}
