// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/deck"
	"github.com/palemoky/flip-seven/internal/game/rule"
	"github.com/palemoky/flip-seven/internal/ui/common"
)

const (
	tileWidth     = 24
	tilesPerRow   = 4
	nameMaxLength = 14
)

// Table is everything the score table needs to draw itself.
type Table struct {
	Game      *game.Game
	Inventory *deck.Inventory
	Selected  int
	Width     int
}

// TableView renders the header, one tile per player and the deck panel.
func TableView(t Table) string {
	g := t.Game
	var sb strings.Builder

	title := common.TitleStyle(fmt.Sprintf("🎴 Flip 7  ·  Round %d  ·  Target %d", g.CurrentRoundNumber(), g.TargetScore))
	sb.WriteString(lipgloss.PlaceHorizontal(t.Width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	tiles := make([]string, len(g.Players))
	for i, p := range g.Players {
		tiles[i] = PlayerTile(p, i == t.Selected)
	}
	for start := 0; start < len(tiles); start += tilesPerRow {
		end := min(start+tilesPerRow, len(tiles))
		row := lipgloss.JoinHorizontal(lipgloss.Top, tiles[start:end]...)
		sb.WriteString(lipgloss.PlaceHorizontal(t.Width, lipgloss.Center, row))
		sb.WriteString("\n")
	}

	if t.Selected >= 0 && t.Selected < len(g.Players) {
		p := g.Players[t.Selected]
		if !p.Current.Hand.IsEmpty() {
			line := common.InfoStyle.Render(fmt.Sprintf("%s: %s", p.Name, Breakdown(p.Current.Hand)))
			sb.WriteString(lipgloss.PlaceHorizontal(t.Width, lipgloss.Center, line))
			sb.WriteString("\n")
		}
	}

	if t.Inventory != nil {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.PlaceHorizontal(t.Width, lipgloss.Center, DeckView(t.Inventory)))
	}
	return sb.String()
}

// PlayerTile renders one player's name, total, hand and live round score.
func PlayerTile(p *game.Player, selected bool) string {
	var sb strings.Builder

	cursor := " "
	if selected {
		cursor = common.CursorIcon
	}
	fmt.Fprintf(&sb, "%s %s %s\n", cursor, common.StateIcon(p.Current.State), common.TruncateName(p.Name, nameMaxLength))
	fmt.Fprintf(&sb, "Total: %d\n", p.TotalScore)
	fmt.Fprintf(&sb, "Hand:  %s\n", p.Current.Hand.String())

	score := fmt.Sprintf("Round: %d", p.RoundScore())
	if p.Current.ManualScoreOverride != nil {
		score += common.DimStyle.Render(" (manual)")
	}
	sb.WriteString(score)
	if p.Current.Hand.HasBonus() {
		sb.WriteString(" " + common.BonusStyle.Render("FLIP 7!"))
	}
	sb.WriteString("\n")
	sb.WriteString(common.DimStyle.Render(p.Current.State.String()))

	style := common.BoxStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(tileWidth).Render(sb.String())
}

// Breakdown explains a hand score, e.g. "(5+6)×2 +10 = 32".
func Breakdown(h card.Hand) string {
	b := rule.Breakdown(h)
	nums := h.Numbers.Values()
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprint(n)
	}

	var sb strings.Builder
	sum := strings.Join(parts, "+")
	if sum == "" {
		sum = "0"
	}
	if b.Multiplier > 1 {
		fmt.Fprintf(&sb, "(%s)×%d", sum, b.Multiplier)
	} else {
		sb.WriteString(sum)
	}
	if b.ModifierSum > 0 {
		fmt.Fprintf(&sb, " +%d", b.ModifierSum)
	}
	if b.Bonus > 0 {
		fmt.Fprintf(&sb, " +%d", b.Bonus)
	}
	fmt.Fprintf(&sb, " = %d", b.Total)
	return sb.String()
}

// DeckView lists how many of each card are still in the deck this round.
func DeckView(inv *deck.Inventory) string {
	var sb strings.Builder
	sb.WriteString("Deck remaining\n")
	for n := card.MinNumber; n <= card.MaxNumber; n++ {
		entry := fmt.Sprintf("%2d:%-2d", n, inv.RemainingNumber(n))
		if inv.RemainingNumber(n) == 0 {
			entry = common.DimStyle.Render(entry)
		}
		sb.WriteString(entry)
		if n == 6 {
			sb.WriteString("\n")
		} else {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("\n")
	for _, v := range card.ModifierValues {
		fmt.Fprintf(&sb, "%s:%d  ", card.ModifierLabel(v), inv.RemainingModifier(v))
	}
	fmt.Fprintf(&sb, "x2:%d\n", inv.RemainingMultipliers())
	fmt.Fprintf(&sb, "%s left", common.Count(inv.RemainingTotal(), "card"))
	return common.BoxStyle.Render(sb.String())
}

// PendingBustBanner asks whether a duplicate draw should bust the player.
func PendingBustBanner(name string, n int) string {
	return common.BannerStyle.Render(fmt.Sprintf("%s drew a second %d. Bust? (y/n)", name, n))
}
