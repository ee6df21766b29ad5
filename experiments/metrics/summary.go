package metrics

import (
	"sort"
	"time"

	"gobblet/game"
)

// BatchSummary folds a set of finished games. It does not depend on the
// order games finished in.
type BatchSummary struct {
	TotalGames          int           `json:"total_games"`
	LightWins           int           `json:"light_wins"`
	DarkWins            int           `json:"dark_wins"`
	Draws               int           `json:"draws"`
	Forfeits            int           `json:"forfeits"`
	Anomalies           int           `json:"anomalies"`
	LightWinRate        float64       `json:"light_win_rate"`
	DarkWinRate         float64       `json:"dark_win_rate"`
	DrawRate            float64       `json:"draw_rate"`
	AverageTurns        float64       `json:"average_turns"`
	AverageMoves        float64       `json:"average_moves"`
	AverageGameDuration time.Duration `json:"average_game_duration"`
	TotalDuration       time.Duration `json:"total_duration"`
	Elapsed             time.Duration `json:"elapsed"`
	GamesPerSecond      float64       `json:"games_per_second"`
}

// Summarize aggregates results. Anomalies are games lost to a worker fault;
// they are reported but excluded from every rate. elapsed is the wall time of
// the whole batch.
func Summarize(results []Result, anomalies int, elapsed time.Duration) BatchSummary {
	s := BatchSummary{
		TotalGames: len(results),
		Anomalies:  anomalies,
		Elapsed:    elapsed,
	}
	turns, moves := 0, 0
	for _, r := range results {
		switch {
		case r.Record.WonBy(game.Light):
			s.LightWins++
		case r.Record.WonBy(game.Dark):
			s.DarkWins++
		default:
			s.Draws++
		}
		if r.Forfeit != "" {
			s.Forfeits++
		}
		turns += r.Turns
		moves += r.Record.TotalMoves
		s.TotalDuration += r.Record.Duration()
	}
	if s.TotalGames > 0 {
		n := float64(s.TotalGames)
		s.LightWinRate = float64(s.LightWins) / n
		s.DarkWinRate = float64(s.DarkWins) / n
		s.DrawRate = float64(s.Draws) / n
		s.AverageTurns = float64(turns) / n
		s.AverageMoves = float64(moves) / n
		s.AverageGameDuration = s.TotalDuration / time.Duration(s.TotalGames)
	}
	if elapsed > 0 {
		s.GamesPerSecond = float64(s.TotalGames) / elapsed.Seconds()
	}
	return s
}

// SummarizeRecords folds stored records, which carry no turn count of their
// own; every turn applies exactly one move.
func SummarizeRecords(records []GameRecord) BatchSummary {
	results := make([]Result, 0, len(records))
	for _, r := range records {
		results = append(results, Result{Record: r, Turns: r.TotalMoves})
	}
	return Summarize(results, 0, 0)
}

// MoveSummary describes the move history of one game.
type MoveSummary struct {
	TotalMoves      int
	LightMoves      int
	DarkMoves       int
	PlaceMoves      int
	RelocationMoves int
	Captures        int
	AverageMoveTime *time.Duration // nil with fewer than two moves
}

func SummarizeMoves(moves []MoveRecord) MoveSummary {
	s := MoveSummary{TotalMoves: len(moves)}
	for _, m := range moves {
		if m.PlayerColor == game.Light {
			s.LightMoves++
		} else {
			s.DarkMoves++
		}
		if m.MoveType == game.NewPiece {
			s.PlaceMoves++
		} else {
			s.RelocationMoves++
		}
		if m.CapturedPieceID != nil {
			s.Captures++
		}
	}
	if len(moves) >= 2 {
		avg := moves[len(moves)-1].Timestamp.Sub(moves[0].Timestamp) / time.Duration(len(moves)-1)
		s.AverageMoveTime = &avg
	}
	return s
}

// MatchupSummary is the batch summary of one light/dark pairing.
type MatchupSummary struct {
	Light   string
	Dark    string
	Summary BatchSummary
}

type StrategyStats struct {
	Strategy    string
	GamesPlayed int
	WinsAsLight int
	WinsAsDark  int
	TotalWins   int
	Draws       int
	WinRate     float64
}

type TournamentSummary struct {
	Matchups   []MatchupSummary
	Stats      map[string]*StrategyStats
	Ranking    []string // best win rate first
	TotalGames int
	Elapsed    time.Duration
}

// SummarizeTournament credits each matchup to both of its strategies and
// ranks strategies by win rate. Ties keep the order of strategies.
func SummarizeTournament(strategies []string, matchups []MatchupSummary, elapsed time.Duration) TournamentSummary {
	t := TournamentSummary{
		Matchups: matchups,
		Stats:    make(map[string]*StrategyStats, len(strategies)),
		Elapsed:  elapsed,
	}
	for _, name := range strategies {
		t.Stats[name] = &StrategyStats{Strategy: name}
	}
	for _, m := range matchups {
		t.TotalGames += m.Summary.TotalGames
		light, dark := t.Stats[m.Light], t.Stats[m.Dark]
		if light == nil || dark == nil {
			continue
		}
		light.GamesPlayed += m.Summary.TotalGames
		light.WinsAsLight += m.Summary.LightWins
		light.TotalWins += m.Summary.LightWins
		light.Draws += m.Summary.Draws

		dark.GamesPlayed += m.Summary.TotalGames
		dark.WinsAsDark += m.Summary.DarkWins
		dark.TotalWins += m.Summary.DarkWins
		dark.Draws += m.Summary.Draws
	}

	t.Ranking = append([]string(nil), strategies...)
	for _, stats := range t.Stats {
		if stats.GamesPlayed > 0 {
			stats.WinRate = float64(stats.TotalWins) / float64(stats.GamesPlayed)
		}
	}
	sort.SliceStable(t.Ranking, func(i, j int) bool {
		return t.Stats[t.Ranking[i]].WinRate > t.Stats[t.Ranking[j]].WinRate
	})
	return t
}
