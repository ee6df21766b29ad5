package experiments

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"gobblet/engine"
	"gobblet/experiments/metrics"
	"gobblet/game"
	"gobblet/meta"
	"gobblet/player"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *Simulator)

// Simulator plays independent games between named strategies. Every game owns
// its board, reserves and random streams, so games never share mutable state.
type Simulator struct {
	workers     int
	parallel    bool
	boardSize   int
	maxTurns    int
	seed        uint64
	moveTimeout time.Duration
	sink        metrics.Sink
	logger      zerolog.Logger

	mu   sync.Mutex
	next uint64 // index of the next game across every batch

	play func(g gameSpec) metrics.Result
}

// Batch is the outcome of one light/dark pairing.
type Batch struct {
	Light   string
	Dark    string
	Results []metrics.Result
	Summary metrics.BatchSummary
}

type Tournament struct {
	Batches []Batch
	Summary metrics.TournamentSummary
}

type gameSpec struct {
	index uint64
	light string
	dark  string
}

// WithWorkers sets the pool size, capped at meta.MAX_WORKERS.
func WithWorkers(workers int) Option {
	return func(s *Simulator) {
		if workers > 0 {
			s.workers = min(workers, meta.MAX_WORKERS)
		}
	}
}

func WithParallel(parallel bool) Option {
	return func(s *Simulator) {
		s.parallel = parallel
	}
}

func WithBoardSize(size int) Option {
	return func(s *Simulator) {
		if size > 0 {
			s.boardSize = size
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(s *Simulator) {
		if turns > 0 {
			s.maxTurns = turns
		}
	}
}

// WithSeed sets the run seed every game's random streams derive from.
func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		s.seed = seed
	}
}

func WithSink(sink metrics.Sink) Option {
	return func(s *Simulator) {
		s.sink = sink
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

func WithMoveTimeout(timeout time.Duration) Option {
	return func(s *Simulator) {
		if timeout > 0 {
			s.moveTimeout = timeout
		}
	}
}

func NewSimulator(options ...Option) *Simulator {
	s := &Simulator{ // Default values
		workers:   meta.MAX_WORKERS,
		parallel:  true,
		boardSize: meta.BOARD_SIZE,
		maxTurns:  meta.MAX_TURNS,
		logger:    log.Logger,
	}
	for _, option := range options {
		option(s)
	}
	s.play = s.playGame
	return s
}

// RunSingle plays one game and hands its record to the sink.
func (s *Simulator) RunSingle(light, dark string) (metrics.Result, error) {
	if err := player.Validate(light, dark); err != nil {
		return metrics.Result{}, err
	}
	result := s.play(gameSpec{index: s.reserve(1), light: light, dark: dark})
	if err := s.save([]metrics.Result{result}); err != nil {
		return result, err
	}
	return result, nil
}

// RunBatch plays games between light and dark and waits for all of them
// before summarizing. A game that faults outside its turn loop is counted as
// an anomaly without stopping its siblings.
func (s *Simulator) RunBatch(games int, light, dark string) (Batch, error) {
	if err := player.Validate(light, dark); err != nil {
		return Batch{}, err
	}
	if games < 0 {
		return Batch{}, fmt.Errorf("invalid number of games: %d", games)
	}

	logger := s.logger.With().Str("light", light).Str("dark", dark).Logger()
	logger.Info().Msgf("starting batch of %d games...", games)

	first := s.reserve(games)
	collector := metrics.NewCollector()
	start := time.Now()

	workers := s.poolSize(games)
	task := make(chan uint64, games)
	for i := range uint64(games) {
		task <- first + i
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range task {
				s.runIsolated(gameSpec{index: index, light: light, dark: dark}, collector, logger)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	results := collector.Results()
	sort.Slice(results, func(i, j int) bool {
		return results[i].Record.GameID < results[j].Record.GameID
	})
	batch := Batch{
		Light:   light,
		Dark:    dark,
		Results: results,
		Summary: metrics.Summarize(results, collector.Anomalies(), elapsed),
	}
	logger.Info().Msgf("completed batch: %d light wins, %d dark wins, %d draws, %d anomalies in %s",
		batch.Summary.LightWins, batch.Summary.DarkWins, batch.Summary.Draws, batch.Summary.Anomalies, elapsed)

	if err := s.save(results); err != nil {
		return batch, err
	}
	return batch, nil
}

// RunTournament plays every ordered (light, dark) pairing of strategies, one
// matchup after another.
func (s *Simulator) RunTournament(strategies []string, gamesPerMatchup int) (Tournament, error) {
	if len(strategies) == 0 {
		return Tournament{}, fmt.Errorf("tournament needs at least one strategy")
	}
	if err := player.Validate(strategies...); err != nil {
		return Tournament{}, err
	}

	matchups := len(strategies) * len(strategies)
	s.logger.Info().Msgf("starting tournament of %d matchups with %d games each...", matchups, gamesPerMatchup)
	start := time.Now()

	tournament := Tournament{}
	summaries := make([]metrics.MatchupSummary, 0, matchups)
	for _, light := range strategies {
		for _, dark := range strategies {
			batch, err := s.RunBatch(gamesPerMatchup, light, dark)
			if err != nil {
				return tournament, fmt.Errorf("matchup %s vs %s: %w", light, dark, err)
			}
			tournament.Batches = append(tournament.Batches, batch)
			summaries = append(summaries, metrics.MatchupSummary{Light: light, Dark: dark, Summary: batch.Summary})
			s.logger.Info().Msgf("completed matchup %d of %d", len(summaries), matchups)
		}
	}

	tournament.Summary = metrics.SummarizeTournament(strategies, summaries, time.Since(start))
	s.logger.Info().Msgf("completed tournament, ranking: %v", tournament.Summary.Ranking)
	return tournament, nil
}

func (s *Simulator) poolSize(games int) int {
	if !s.parallel {
		return 1
	}
	return max(1, min(games, s.workers))
}

// reserve hands out n consecutive game indices.
func (s *Simulator) reserve(n int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	first := s.next
	s.next += uint64(n)
	return first
}

func (s *Simulator) runIsolated(g gameSpec, collector metrics.Collector, logger zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			collector.AddAnomaly()
			logger.Error().Uint64("index", g.index).Msgf("game faulted: %v", r)
		}
	}()
	collector.Add(s.play(g))
}

func (s *Simulator) playGame(g gameSpec) metrics.Result {
	streams := newStreams(s.seed, g.index)
	id, err := uuid.NewRandomFromReader(streams.id)
	if err != nil {
		panic(fmt.Sprintf("failed to derive game id: %v", err))
	}

	light, err := player.New(g.light, game.Light, streams.light)
	if err != nil {
		panic(err)
	}
	dark, err := player.New(g.dark, game.Dark, streams.dark)
	if err != nil {
		panic(err)
	}

	e := engine.New(light, dark,
		engine.WithGameID(id.String()),
		engine.WithBoardSize(s.boardSize),
		engine.WithMaxTurns(s.maxTurns),
		engine.WithMoveTimeout(s.moveTimeout),
		engine.WithLogger(s.logger),
	)
	return e.Run()
}

func (s *Simulator) save(results []metrics.Result) error {
	if s.sink == nil || len(results) == 0 {
		return nil
	}
	if err := s.sink.Save(metrics.Records(results)...); err != nil {
		return fmt.Errorf("failed to save game records: %w", err)
	}
	return nil
}

type streams struct {
	light *rand.Rand
	dark  *rand.Rand
	id    *rand.Rand
}

// newStreams derives independent generators for one game from the run seed
// and the game's index.
func newStreams(seed, index uint64) streams {
	gameSeed := splitmix64(seed + index)
	return streams{
		light: rand.New(rand.NewSource(splitmix64(gameSeed + 1))),
		dark:  rand.New(rand.NewSource(splitmix64(gameSeed + 2))),
		id:    rand.New(rand.NewSource(splitmix64(gameSeed + 3))),
	}
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
