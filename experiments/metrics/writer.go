package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gobblet/game"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by experiment and timestamp.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(results []Result) error {
	header := []string{"game_id", "light", "dark", "winner", "total_moves", "turns", "start_time", "end_time", "duration_seconds", "forfeit"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		record := r.Record
		winner := "draw"
		if record.Winner != nil {
			winner = record.Winner.String()
		}
		endTime, duration := "", ""
		if record.EndTime != nil {
			endTime = record.EndTime.Format(time.RFC3339Nano)
		}
		if record.GameDurationSeconds != nil {
			duration = strconv.FormatFloat(*record.GameDurationSeconds, 'f', 6, 64)
		}
		rows = append(rows, []string{
			record.GameID,
			record.PlayerStrategies[game.Light],
			record.PlayerStrategies[game.Dark],
			winner,
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(r.Turns),
			record.StartTime.Format(time.RFC3339Nano),
			endTime,
			duration,
			r.Forfeit,
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMatchups(matchups []MatchupSummary) error {
	header := []string{"light", "dark", "games", "light_wins", "dark_wins", "draws", "forfeits", "anomalies", "light_win_rate", "average_moves", "games_per_second"}
	rows := make([][]string, 0, len(matchups))
	for _, m := range matchups {
		s := m.Summary
		rows = append(rows, []string{
			m.Light,
			m.Dark,
			strconv.Itoa(s.TotalGames),
			strconv.Itoa(s.LightWins),
			strconv.Itoa(s.DarkWins),
			strconv.Itoa(s.Draws),
			strconv.Itoa(s.Forfeits),
			strconv.Itoa(s.Anomalies),
			strconv.FormatFloat(s.LightWinRate, 'f', 4, 64),
			strconv.FormatFloat(s.AverageMoves, 'f', 2, 64),
			strconv.FormatFloat(s.GamesPerSecond, 'f', 2, 64),
		})
	}
	return w.write("matchups.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
