package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gobblet/experiments"
	"gobblet/experiments/metrics"
	"gobblet/meta"
	"gobblet/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	games := flag.Int("games", meta.DEFAULT_GAMES, "Number of games to simulate")
	light := flag.String("light", "random", "Light strategy: "+strings.Join(player.Names, ", "))
	dark := flag.String("dark", "random", "Dark strategy: "+strings.Join(player.Names, ", "))
	boardSize := flag.Int("board-size", meta.BOARD_SIZE, "Side length of the board")
	maxTurns := flag.Int("max-turns", meta.MAX_TURNS, "Moves before a game is drawn")
	seed := flag.Uint64("seed", 0, "Run seed; 0 picks one from the clock")
	parallel := flag.Bool("parallel", true, "Run games concurrently")
	workers := flag.Int("workers", meta.MAX_WORKERS, "Concurrent games, at most 8")
	moveTimeout := flag.Duration("move-timeout", 0, "Forfeit a side that takes longer to move; 0 disables")
	tournament := flag.Bool("tournament", false, "Play every pairing of -strategies")
	strategies := flag.String("strategies", strings.Join(player.Names, ","), "Comma separated tournament strategies")
	tournamentGames := flag.Int("tournament-games", meta.DEFAULT_GAMES, "Games per tournament matchup")
	throughput := flag.Bool("throughput", false, "Measure games per second for growing worker pools")
	dataFile := flag.String("data-file", meta.DATA_FILE, "JSON file game records are appended to")
	outDir := flag.String("out-dir", "experiments", "Directory for CSV summaries; empty disables")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	log.Info().Uint64("seed", *seed).Msg("starting simulation")

	store, err := metrics.NewJSONStore(*dataFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open game store")
	}

	simulator := experiments.NewSimulator(
		experiments.WithSeed(*seed),
		experiments.WithParallel(*parallel),
		experiments.WithWorkers(*workers),
		experiments.WithBoardSize(*boardSize),
		experiments.WithMaxTurns(*maxTurns),
		experiments.WithMoveTimeout(*moveTimeout),
		experiments.WithSink(store),
	)

	switch {
	case *throughput:
		points, err := simulator.RunThroughput(*games, *light, *dark)
		if err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		fmt.Println(renderThroughput(points))

	case *tournament:
		names := strings.Split(*strategies, ",")
		result, err := simulator.RunTournament(names, *tournamentGames)
		if err != nil {
			log.Fatal().Err(err).Msg("tournament failed")
		}
		fmt.Println(renderTournament(result.Summary))
		writeCSV("tournament", *outDir, result.Summary.Matchups, func(w *metrics.Writer) error {
			var results []metrics.Result
			for _, batch := range result.Batches {
				results = append(results, batch.Results...)
			}
			return w.WriteGameRecords(results)
		})

	default:
		batch, err := simulator.RunBatch(*games, *light, *dark)
		if err != nil {
			log.Fatal().Err(err).Msg("batch failed")
		}
		fmt.Println(renderBatch(batch.Light, batch.Dark, batch.Summary))
		if len(batch.Results) > 0 {
			last := batch.Results[len(batch.Results)-1].Record
			fmt.Println(renderMoves(last.GameID, metrics.SummarizeMoves(last.Moves)))
		}
		matchups := []metrics.MatchupSummary{{Light: batch.Light, Dark: batch.Dark, Summary: batch.Summary}}
		writeCSV("batch", *outDir, matchups, func(w *metrics.Writer) error {
			return w.WriteGameRecords(batch.Results)
		})
	}

	fmt.Println(renderStore(store))
}

func writeCSV(name, outDir string, matchups []metrics.MatchupSummary, games func(w *metrics.Writer) error) {
	if outDir == "" {
		return
	}
	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create experiment writer")
	}
	if err := games(writer); err != nil {
		log.Fatal().Err(err).Msg("failed to write game records")
	}
	if err := writer.WriteMatchups(matchups); err != nil {
		log.Fatal().Err(err).Msg("failed to write matchups")
	}
	log.Info().Msgf("stored summaries in %s", writer.Dir())
}
