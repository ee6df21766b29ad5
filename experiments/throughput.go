package experiments

import (
	"fmt"
	"time"

	"gobblet/meta"
)

// ThroughputPoint is the speed of one batch at a given pool size.
type ThroughputPoint struct {
	Workers        int
	Games          int
	Elapsed        time.Duration
	GamesPerSecond float64
}

// RunThroughput replays the same batch with pools of 1, 2, 4 ... up to
// meta.MAX_WORKERS workers.
func (s *Simulator) RunThroughput(games int, light, dark string) ([]ThroughputPoint, error) {
	var points []ThroughputPoint

	s.logger.Info().Msg("starting throughput experiment...")

	for workers := 1; workers <= meta.MAX_WORKERS; workers *= 2 {
		run := s.fork(WithWorkers(workers), WithParallel(true), WithSink(nil))
		batch, err := run.RunBatch(games, light, dark)
		if err != nil {
			return points, fmt.Errorf("throughput with %d workers: %w", workers, err)
		}
		points = append(points, ThroughputPoint{
			Workers:        workers,
			Games:          batch.Summary.TotalGames,
			Elapsed:        batch.Summary.Elapsed,
			GamesPerSecond: batch.Summary.GamesPerSecond,
		})
		s.logger.Info().Msgf("%d workers: %.2f games/s", workers, batch.Summary.GamesPerSecond)
	}

	s.logger.Info().Msg("completed throughput experiment")
	return points, nil
}

// fork copies the configuration of s, restarting game indices at zero so each
// run plays the same games.
func (s *Simulator) fork(options ...Option) *Simulator {
	c := &Simulator{
		workers:     s.workers,
		parallel:    s.parallel,
		boardSize:   s.boardSize,
		maxTurns:    s.maxTurns,
		seed:        s.seed,
		moveTimeout: s.moveTimeout,
		sink:        s.sink,
		logger:      s.logger,
	}
	for _, option := range options {
		option(c)
	}
	c.play = c.playGame
	return c
}
