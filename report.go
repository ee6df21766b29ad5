package main

import (
	"fmt"
	"strings"

	"gobblet/experiments"
	"gobblet/experiments/metrics"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#414141ff", Dark: "#8f8f8fff"}).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#4204b5ff", Dark: "#8f6cf0ff"}).Render
	lightStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8a880fff", Dark: "#ddda1dff"}).Render
	darkStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0003adff", Dark: "#5f61fcff"}).Render
	labelStyle = lipgloss.NewStyle().Width(24).Render
)

func row(label, value string) string {
	return labelStyle(label) + value
}

func renderBatch(light, dark string, s metrics.BatchSummary) string {
	lines := []string{
		titleStyle(fmt.Sprintf("%s vs %s", lightStyle(light), darkStyle(dark))),
		row("Games", fmt.Sprintf("%d", s.TotalGames)),
		row("Light wins", lightStyle(fmt.Sprintf("%d (%.1f%%)", s.LightWins, 100*s.LightWinRate))),
		row("Dark wins", darkStyle(fmt.Sprintf("%d (%.1f%%)", s.DarkWins, 100*s.DarkWinRate))),
		row("Draws", fmt.Sprintf("%d (%.1f%%)", s.Draws, 100*s.DrawRate)),
		row("Forfeits", fmt.Sprintf("%d", s.Forfeits)),
		row("Average turns", fmt.Sprintf("%.1f", s.AverageTurns)),
		row("Average moves", fmt.Sprintf("%.1f", s.AverageMoves)),
		row("Average game duration", s.AverageGameDuration.String()),
		row("Total simulation time", s.Elapsed.String()),
		row("Games per second", fmt.Sprintf("%.2f", s.GamesPerSecond)),
	}
	if s.Anomalies > 0 {
		lines = append(lines, row("Anomalies", fmt.Sprintf("%d", s.Anomalies)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderTournament(t metrics.TournamentSummary) string {
	lines := []string{titleStyle("Strategy rankings")}
	for i, name := range t.Ranking {
		stats := t.Stats[name]
		lines = append(lines, fmt.Sprintf("%d. %-10s %5.1f%% win rate (%d/%d games, %d as light, %d as dark)",
			i+1, name, 100*stats.WinRate, stats.TotalWins, stats.GamesPlayed, stats.WinsAsLight, stats.WinsAsDark))
	}
	lines = append(lines, "", titleStyle("Matchups"))
	for _, m := range t.Matchups {
		lines = append(lines, fmt.Sprintf("%s vs %s: %d-%d, %d draws",
			lightStyle(m.Light), darkStyle(m.Dark), m.Summary.LightWins, m.Summary.DarkWins, m.Summary.Draws))
	}
	lines = append(lines, "", row("Total games", fmt.Sprintf("%d", t.TotalGames)), row("Total time", t.Elapsed.String()))
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderMoves(gameID string, s metrics.MoveSummary) string {
	lines := []string{
		titleStyle("Game " + gameID[:min(8, len(gameID))]),
		row("Moves", fmt.Sprintf("%d (%s %d, %s %d)", s.TotalMoves, lightStyle("light"), s.LightMoves, darkStyle("dark"), s.DarkMoves)),
		row("Placements", fmt.Sprintf("%d", s.PlaceMoves)),
		row("Relocations", fmt.Sprintf("%d", s.RelocationMoves)),
		row("Captures", fmt.Sprintf("%d", s.Captures)),
	}
	if s.AverageMoveTime != nil {
		lines = append(lines, row("Average move time", s.AverageMoveTime.String()))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderThroughput(points []experiments.ThroughputPoint) string {
	lines := []string{titleStyle("Throughput")}
	for _, p := range points {
		lines = append(lines, row(fmt.Sprintf("%d workers", p.Workers), fmt.Sprintf("%.2f games/s (%d games in %s)", p.GamesPerSecond, p.Games, p.Elapsed)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderStore(store *metrics.JSONStore) string {
	s := store.Statistics()
	lines := []string{
		titleStyle("Stored games: " + store.Path()),
		row("Games", fmt.Sprintf("%d", s.TotalGames)),
		row("Light win rate", fmt.Sprintf("%.1f%%", 100*s.LightWinRate)),
		row("Dark win rate", fmt.Sprintf("%.1f%%", 100*s.DarkWinRate)),
		row("Average moves", fmt.Sprintf("%.1f", s.AverageMoves)),
		row("Average game duration", s.AverageGameDuration.String()),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
