// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/flip-seven/internal/game/round"
)

// State icons
const (
	InRoundIcon = "🃏"
	BankedIcon  = "💰"
	BustedIcon  = "💥"
	FrozenIcon  = "🧊"
	WinnerIcon  = "👑"
	CursorIcon  = "▶"
)

// Lipgloss styles
var (
	DocStyle      = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	SelectedStyle = BoxStyle.BorderForeground(lipgloss.Color("212"))
	PromptStyle   = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	InfoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	DimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	BannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Bold(true).Padding(0, 1)
	BonusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
)

// StateIcon is the marker drawn next to a player in state s.
func StateIcon(s round.State) string {
	switch s {
	case round.Banked:
		return BankedIcon
	case round.Busted:
		return BustedIcon
	case round.Frozen:
		return FrozenIcon
	default:
		return InRoundIcon
	}
}
