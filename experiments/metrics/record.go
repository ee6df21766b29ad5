package metrics

import (
	"time"

	"gobblet/game"
)

// MoveRecord is one applied move as it is persisted.
type MoveRecord struct {
	PlayerColor     game.Color    `json:"player_color"`
	MoveType        game.MoveKind `json:"move_type"`
	PieceID         int           `json:"piece_id"`
	PieceSize       game.Size     `json:"piece_size"`
	FromPosition    *[2]int       `json:"from_position"` // nil for placements
	ToPosition      [2]int        `json:"to_position"`
	CapturedPieceID *int          `json:"captured_piece_id"`
	MoveNumber      int           `json:"move_number"` // 1-based, shared by both sides
	Timestamp       time.Time     `json:"timestamp"`
}

// GameRecord is the append-only log of a finished game. It is never mutated
// once built.
type GameRecord struct {
	GameID              string                `json:"game_id"`
	StartTime           time.Time             `json:"start_time"`
	EndTime             *time.Time            `json:"end_time"`
	Winner              *game.Color           `json:"winner"` // nil for a draw
	Moves               []MoveRecord          `json:"moves"`
	PlayerStrategies    map[game.Color]string `json:"player_strategies"`
	TotalMoves          int                   `json:"total_moves"`
	GameDurationSeconds *float64              `json:"game_duration_seconds"`
}

// Result is a finished game together with what the record schema does not
// carry.
type Result struct {
	Record  GameRecord
	Turns   int
	Forfeit string // reason when the game ended by forfeiture
}

func NewMoveRecord(placement game.Placement, number int, at time.Time) MoveRecord {
	m := placement.Move
	record := MoveRecord{
		PlayerColor: m.Piece.Color,
		MoveType:    m.Kind,
		PieceID:     m.Piece.ID,
		PieceSize:   m.Piece.Size,
		ToPosition:  coordinates(m.To),
		MoveNumber:  number,
		Timestamp:   at,
	}
	if m.Kind == game.Relocation {
		from := coordinates(m.From)
		record.FromPosition = &from
	}
	if placement.Covered {
		id := placement.Captured.ID
		record.CapturedPieceID = &id
	}
	return record
}

func coordinates(pos game.Position) [2]int {
	return [2]int{pos.Row, pos.Col}
}

// IsDraw reports whether the game finished without a winner.
func (r GameRecord) IsDraw() bool {
	return r.EndTime != nil && r.Winner == nil
}

// WonBy reports whether color won the game.
func (r GameRecord) WonBy(color game.Color) bool {
	return r.Winner != nil && *r.Winner == color
}

func (r GameRecord) Duration() time.Duration {
	if r.GameDurationSeconds == nil {
		return 0
	}
	return time.Duration(*r.GameDurationSeconds * float64(time.Second))
}
