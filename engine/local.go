package engine

import (
	"fmt"
	"time"

	"gobblet/experiments/metrics"
	"gobblet/game"
	"gobblet/meta"
	"gobblet/player"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Engine runs one game between two strategies. It is not safe for concurrent
// use; a simulator gives every game its own Engine.
type Engine struct {
	id          string
	boardSize   int
	maxTurns    int
	moveTimeout time.Duration
	clock       func() time.Time
	logger      zerolog.Logger

	board      *game.Board
	reserves   map[game.Color]*game.Reserve
	owned      map[int]game.Piece // every piece of the game by id
	strategies map[game.Color]player.Strategy

	status    Status
	active    game.Color
	turnCount int
	winner    *game.Color
	forfeit   error
	startTime time.Time
	endTime   time.Time
	moves     []metrics.MoveRecord
}

// New sets up a game with full reserves. Light moves first.
func New(light, dark player.Strategy, options ...Option) *Engine {
	if light == nil || dark == nil {
		panic("engine needs a strategy for each side")
	}
	if light.Color() != game.Light || dark.Color() != game.Dark {
		panic(fmt.Sprintf("strategies play the wrong colors: %s and %s", light.Color(), dark.Color()))
	}

	e := &Engine{ // Default values
		boardSize: meta.BOARD_SIZE,
		maxTurns:  meta.MAX_TURNS,
		clock:     defaultClock,
		logger:    log.Logger,
		strategies: map[game.Color]player.Strategy{
			game.Light: light,
			game.Dark:  dark,
		},
		active: game.Light,
	}
	for _, option := range options {
		option(e)
	}
	if e.id == "" {
		e.id = uuid.NewString()
	}
	e.logger = e.logger.With().Str("game", e.id).Logger()

	e.board = game.NewBoard(e.boardSize)
	e.reserves = map[game.Color]*game.Reserve{
		game.Light: game.NewReserve(game.Light, meta.PIECES_PER_SIZE, meta.LIGHT_FIRST_ID),
		game.Dark:  game.NewReserve(game.Dark, meta.PIECES_PER_SIZE, meta.DARK_FIRST_ID),
	}
	e.owned = map[int]game.Piece{}
	for _, reserve := range e.reserves {
		for _, piece := range reserve.Pieces() {
			e.owned[piece.ID] = piece
		}
	}
	return e
}

func (e *Engine) ID() string {
	return e.id
}

func (e *Engine) Board() game.View {
	return e.board
}

func (e *Engine) Status() Status {
	return e.status
}

// Winner returns the winning color, if any.
func (e *Engine) Winner() (game.Color, bool) {
	if e.winner == nil {
		return 0, false
	}
	return *e.winner, true
}

// Forfeit returns why the game ended by forfeiture, or nil.
func (e *Engine) Forfeit() error {
	return e.forfeit
}

func (e *Engine) TurnCount() int {
	return e.turnCount
}

// LegalMoves lists every move color could make now.
func (e *Engine) LegalMoves(color game.Color) []game.Move {
	return game.LegalMoves(e.board, color, e.reserves[color])
}

// Start moves the game from NotStarted to InProgress. It is a no-op afterwards.
func (e *Engine) Start() {
	if e.status != NotStarted {
		return
	}
	e.status = InProgress
	e.startTime = e.clock()
}

// Run plays turns until the game is finished.
func (e *Engine) Run() metrics.Result {
	e.Start()
	for !e.status.Finished() {
		if _, err := e.Step(); err != nil {
			break
		}
	}
	result := metrics.Result{Record: e.Record(), Turns: e.turnCount}
	if e.forfeit != nil {
		result.Forfeit = e.forfeit.Error()
	}
	return result
}

// Step asks the active side for a move and applies it.
func (e *Engine) Step() (Outcome, error) {
	e.Start()
	if e.status.Finished() {
		return Outcome{}, ErrGameOver
	}
	move, err := e.choose(e.strategies[e.active])
	if err != nil {
		return e.forfeitTurn(fmt.Errorf("%w: %w", ErrStrategyFault, err)), nil
	}
	return e.ApplyMove(move)
}

// choose runs the strategy, turning panics and overruns into errors.
func (e *Engine) choose(strategy player.Strategy) (game.Move, error) {
	if e.moveTimeout <= 0 {
		return safeChoose(strategy, e.board, e.reserves[e.active].Clone())
	}

	type choice struct {
		move game.Move
		err  error
	}
	done := make(chan choice, 1)
	board, reserve := e.board.Clone(), e.reserves[e.active].Clone()
	go func() {
		move, err := safeChoose(strategy, board, reserve)
		done <- choice{move, err}
	}()

	timer := time.NewTimer(e.moveTimeout)
	defer timer.Stop()
	select {
	case c := <-done:
		return c.move, c.err
	case <-timer.C:
		return game.Move{}, fmt.Errorf("%w after %s", ErrMoveTimeout, e.moveTimeout)
	}
}

func safeChoose(strategy player.Strategy, board game.View, reserve *game.Reserve) (move game.Move, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return strategy.ChooseMove(board, reserve)
}

// ApplyMove checks that the active side owns the move's piece and that the
// piece is where the move claims, then applies it through the board. Any
// failure forfeits the turn; the only error returned is ErrGameOver.
func (e *Engine) ApplyMove(move game.Move) (Outcome, error) {
	e.Start()
	if e.status.Finished() {
		return Outcome{}, ErrGameOver
	}
	if err := e.checkOwnership(move); err != nil {
		return e.forfeitTurn(err), nil
	}
	placement, err := e.board.Apply(move)
	if err != nil {
		return e.forfeitTurn(err), nil
	}
	if move.Kind == game.NewPiece {
		e.reserves[e.active].Take(move.Piece)
	}

	e.moves = append(e.moves, metrics.NewMoveRecord(placement, len(e.moves)+1, e.clock()))
	e.logger.Debug().
		Int("move", len(e.moves)).
		Stringer("color", e.active).
		Stringer("kind", move.Kind).
		Stringer("to", move.To).
		Msg("applied move")

	e.advance()
	return Outcome{Kind: Applied, Color: placement.Move.Piece.Color, Placement: placement}, nil
}

func (e *Engine) checkOwnership(move game.Move) error {
	if err := move.Validate(); err != nil {
		return err
	}
	canonical, ok := e.owned[move.Piece.ID]
	if !ok || canonical != move.Piece {
		return fmt.Errorf("%w: unknown piece %s#%d", ErrNotOwned, move.Piece, move.Piece.ID)
	}
	if move.Piece.Color != e.active {
		return fmt.Errorf("%w: %s belongs to %s", ErrNotOwned, move.Piece, move.Piece.Color)
	}
	switch move.Kind {
	case game.NewPiece:
		if !e.reserves[e.active].Contains(move.Piece) {
			return fmt.Errorf("%w: %s#%d is not in reserve", ErrNotOwned, move.Piece, move.Piece.ID)
		}
	case game.Relocation:
		if !e.board.InRange(move.From) {
			return fmt.Errorf("%w: origin %s", game.ErrOutOfRange, move.From)
		}
		if top, ok := e.board.Top(move.From); !ok || top != move.Piece {
			return fmt.Errorf("%w: %s#%d at %s", ErrNotAtOrigin, move.Piece, move.Piece.ID, move.From)
		}
	}
	return nil
}

// advance settles the game after a successful move.
func (e *Engine) advance() {
	if winner, won := e.board.CheckWinner(); won {
		e.finish(Won, &winner)
		return
	}
	if e.board.IsFull() {
		e.finish(Draw, nil)
		return
	}
	e.turnCount++
	if e.turnCount >= e.maxTurns {
		e.finish(Draw, nil)
		return
	}
	e.active = e.active.Opponent()
}

func (e *Engine) forfeitTurn(reason error) Outcome {
	loser := e.active
	winner := loser.Opponent()
	e.forfeit = reason
	e.logger.Warn().Err(reason).Stringer("color", loser).Msg("side forfeits")
	e.finish(Won, &winner)
	return Outcome{Kind: Forfeited, Color: loser, Reason: reason}
}

func (e *Engine) finish(status Status, winner *game.Color) {
	e.status = status
	e.winner = winner
	e.endTime = e.clock()
	e.logger.Debug().
		Stringer("status", status).
		Int("turns", e.turnCount).
		Int("moves", len(e.moves)).
		Msgf("game over%s", e.board)
}

// Record builds the game record. End time and duration are only set once the
// game is finished.
func (e *Engine) Record() metrics.GameRecord {
	record := metrics.GameRecord{
		GameID:    e.id,
		StartTime: e.startTime,
		Moves:     append([]metrics.MoveRecord{}, e.moves...),
		PlayerStrategies: map[game.Color]string{
			game.Light: e.strategies[game.Light].Name(),
			game.Dark:  e.strategies[game.Dark].Name(),
		},
		TotalMoves: len(e.moves),
	}
	if e.status.Finished() {
		end := e.endTime
		duration := end.Sub(e.startTime).Seconds()
		record.EndTime = &end
		record.GameDurationSeconds = &duration
		if e.winner != nil {
			winner := *e.winner
			record.Winner = &winner
		}
	}
	return record
}

func (e *Engine) State() State {
	state := State{
		GameID: e.id,
		Turn:   e.turnCount,
		Active: e.active,
		Status: e.status,
		Board:  e.board.String(),
		Reserves: map[game.Color]int{
			game.Light: e.reserves[game.Light].Len(),
			game.Dark:  e.reserves[game.Dark].Len(),
		},
		Moves: len(e.moves),
	}
	if e.winner != nil {
		winner := *e.winner
		state.Winner = &winner
	}
	return state
}
