package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/stats"
	"github.com/palemoky/flip-seven/internal/storage"
	"github.com/palemoky/flip-seven/internal/ui/common"
)

// StatsView renders the game summary and one line per player.
func StatsView(gs stats.GameStats, width int) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.TitleStyle("📊 Game stats")))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.BoxStyle.Render(summary(gs))))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.BoxStyle.Render(playerTable(gs.Players))))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.DimStyle.Render("Press ESC to return")))
	return sb.String()
}

func summary(gs stats.GameStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rounds played:    %d\n", gs.RoundsPlayed)
	fmt.Fprintf(&sb, "Busts:            %d\n", gs.Busts)
	fmt.Fprintf(&sb, "Flip 7s:          %d\n", gs.FlipSevens)
	fmt.Fprintf(&sb, "x2 cards scored:  %d\n", gs.MultiplierCards)
	fmt.Fprintf(&sb, "Modifier points:  %d\n", gs.ModifierPoints)
	fmt.Fprintf(&sb, "Lead changes:     %d\n", gs.LeadChanges)
	if h := gs.HighestRound; h != nil {
		fmt.Fprintf(&sb, "Best round:       %s, %d in round %d\n", h.PlayerName, h.Score, h.Round)
	}
	if c := gs.BiggestComeback; c != nil {
		fmt.Fprintf(&sb, "Biggest comeback: %s from %d behind in round %d\n", c.PlayerName, c.Deficit, c.Round)
	}
	fmt.Fprintf(&sb, "Win margin:       %d", gs.WinMargin)
	return sb.String()
}

func playerTable(players []stats.PlayerStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-14s %5s %5s %7s %7s %7s %6s %5s %6s\n",
		"Player", "Best", "Worst", "Median", "Mean", "StdDev", "Busts", "F7s", "Streak")
	for _, p := range players {
		sd := "-"
		if p.StdDev != nil {
			sd = fmt.Sprintf("%.1f", *p.StdDev)
		}
		fmt.Fprintf(&sb, "%-14s %5d %5d %7.1f %7.1f %7s %3d/%-2d %5d %6d\n",
			common.TruncateName(p.PlayerName, 14), p.Best, p.Worst, p.Median, p.Mean, sd,
			p.Busts, p.RoundsPlayed, p.FlipSevens, p.LongestNoBustStreak)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// GameOverView announces the winners and the final standings.
func GameOverView(g *game.Game, gs stats.GameStats, width int) string {
	var sb strings.Builder

	names := make([]string, 0, len(g.Winners()))
	for _, w := range g.Winners() {
		names = append(names, w.Name)
	}
	title := fmt.Sprintf("%s %s wins!", common.WinnerIcon, strings.Join(names, " & "))
	if len(names) > 1 {
		title = fmt.Sprintf("%s %s share the win!", common.WinnerIcon, strings.Join(names, " & "))
	}
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.TitleStyle(title)))
	sb.WriteString("\n\n")

	var table strings.Builder
	for _, st := range gs.Standings {
		fmt.Fprintf(&table, "%d. %-14s %5d\n", st.Rank, common.TruncateName(st.PlayerName, 14), st.TotalScore)
	}
	fmt.Fprintf(&table, "\n%s, %s", common.Count(gs.RoundsPlayed, "round"), common.Count(gs.FlipSevens, "Flip 7"))
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.BoxStyle.Render(table.String())))
	sb.WriteString("\n\n")

	hint := "again: rematch · finish: record and quit · undo: reopen the last round · stats"
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.DimStyle.Render(hint)))
	return sb.String()
}

// LeaderboardView renders lifetime records, best first.
func LeaderboardView(entries []storage.LeaderboardEntry, width int) string {
	var sb strings.Builder
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.TitleStyle("🏆 Leaderboard")))
	sb.WriteString("\n\n")

	var table strings.Builder
	if len(entries) == 0 {
		table.WriteString("No finished games yet")
	}
	for _, e := range entries {
		fmt.Fprintf(&table, "%2d. %-14s %3d wins / %3d games  %5.1f%%\n",
			e.Rank, common.TruncateName(e.Name, 14), e.Wins, e.Games, e.WinRate)
	}
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		common.BoxStyle.Render(strings.TrimRight(table.String(), "\n"))))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.DimStyle.Render("Press ESC to return")))
	return sb.String()
}
