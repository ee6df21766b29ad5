package engine

import (
	"errors"
	"fmt"
	"time"

	"gobblet/game"
	"gobblet/player"

	"github.com/rs/zerolog"
)

var (
	ErrStrategyFault = errors.New("strategy fault")
	ErrNotOwned      = errors.New("piece not owned by the active side")
	ErrNotAtOrigin   = game.ErrNotAtOrigin
	ErrNoLegalMove   = player.ErrNoLegalMove
	ErrMoveTimeout   = errors.New("move timed out")
	ErrGameOver      = errors.New("game is over")
)

type Status int

const (
	NotStarted Status = iota
	InProgress
	Won
	Draw
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) Finished() bool {
	return s == Won || s == Draw
}

type OutcomeKind int

const (
	Applied OutcomeKind = iota
	Forfeited
)

// Outcome is the result of one turn: either the move was applied, or the
// side to move forfeited for Reason.
type Outcome struct {
	Kind      OutcomeKind
	Color     game.Color
	Placement game.Placement // set when Applied
	Reason    error          // set when Forfeited
}

// State is a point-in-time snapshot of a game.
type State struct {
	GameID   string
	Turn     int
	Active   game.Color
	Status   Status
	Winner   *game.Color
	Board    string
	Reserves map[game.Color]int
	Moves    int
}

type Option func(e *Engine)

func WithBoardSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.boardSize = size
		}
	}
}

// WithMaxTurns caps the number of applied moves before the game is drawn.
func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithGameID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.id = id
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMoveTimeout forfeits a side whose strategy takes longer than timeout to
// choose a move. The strategy then works on copies of the board and reserve.
func WithMoveTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.moveTimeout = timeout
		}
	}
}

func defaultClock() time.Time {
	return time.Now().UTC()
}
