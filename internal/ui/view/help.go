package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/flip-seven/internal/ui/common"
)

var commandHelp = [][2]string{
	{"0..12", "draw a number card"},
	{"-7", "take a number card back"},
	{"+4 / -+4", "add or remove a modifier"},
	{"x2 / -x2", "add or remove a multiplier"},
	{"bank bust freeze", "finish the player's round"},
	{"unbank", "reopen the player's round"},
	{"score N / clear", "set or clear a manual round score"},
	{"end", "score the round and deal the next"},
	{"reset", "throw away the current round"},
	{"undo redo", "step through history"},
	{"target N", "change the target score"},
	{"name NEW", "rename the player"},
	{"add NAME / remove", "seat or drop a player"},
	{"move N", "move the player to seat N"},
	{"stats board", "game stats, lifetime leaderboard"},
	{"quit", "save and leave"},
}

// HelpView lists the commands and keys.
func HelpView(width int) string {
	var sb strings.Builder
	for _, h := range commandHelp {
		sb.WriteString(common.InfoStyle.Render(padRight(h[0], 18)))
		sb.WriteString(h[1])
		sb.WriteString("\n")
	}
	sb.WriteString("\n↑/↓ or tab: choose player · ctrl+u / ctrl+r: undo / redo · esc: back")

	var out strings.Builder
	out.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.TitleStyle("📖 Commands")))
	out.WriteString("\n\n")
	out.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.BoxStyle.Render(sb.String())))
	return out.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
