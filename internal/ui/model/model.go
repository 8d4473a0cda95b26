package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/session"
	"github.com/palemoky/flip-seven/internal/sound"
	"github.com/palemoky/flip-seven/internal/stats"
	"github.com/palemoky/flip-seven/internal/storage"
	"github.com/palemoky/flip-seven/internal/ui/common"
	"github.com/palemoky/flip-seven/internal/ui/view"
)

const (
	statusTTL        = 3 * time.Second
	leaderboardLimit = 10
	fetchTimeout     = 3 * time.Second
	inputPlaceholder = "card (7, +4, x2), bank, bust, end, undo, help..."
)

// Options configures a Model. Controller is required.
type Options struct {
	Controller  *session.Controller
	Sound       SoundPlayer
	Leaderboard LeaderboardSource
}

// Model is the scorekeeper screen.
type Model struct {
	ctrl  *session.Controller
	sound SoundPlayer
	board LeaderboardSource

	phase    Phase
	selected int
	input    textinput.Model

	status      string
	statusError bool
	statusID    int

	// pendingBust is set while a duplicate draw waits for y/n.
	pendingBust *pendingBust
	leaderboard []storage.LeaderboardEntry
	finished    bool

	width  int
	height int
}

type pendingBust struct {
	playerID string
	name     string
	number   int
}

// New creates a Model over a controller that already holds a game.
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.CharLimit = 40
	ti.Width = 50
	ti.Prompt = "> "
	ti.Focus()

	m := &Model{
		ctrl:  opts.Controller,
		sound: opts.Sound,
		board: opts.Leaderboard,
		input: ti,
		width: 100,
	}
	m.syncPhase()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Phase returns the screen being shown.
func (m *Model) Phase() Phase { return m.phase }

// Selected returns the seat of the selected player.
func (m *Model) Selected() int { return m.selected }

// Status returns the status line text.
func (m *Model) Status() string { return m.status }

// Finished reports whether the game was ended and recorded.
func (m *Model) Finished() bool { return m.finished }

// Update handles tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
			m.statusError = false
		}
		return m, nil

	case LeaderboardMsg:
		if msg.Err != nil {
			return m, m.fail("leaderboard unavailable: %v", msg.Err)
		}
		m.leaderboard = msg.Entries
		m.phase = PhaseLeaderboard
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		return tea.Quit, true
	}

	if m.pendingBust != nil {
		return m.confirmBust(msg), true
	}

	switch m.phase {
	case PhaseStats, PhaseLeaderboard, PhaseHelp:
		if key.Matches(msg, keys.Back) {
			m.syncPhase()
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.moveSelection(-1)
		return nil, true
	case key.Matches(msg, keys.Down):
		m.moveSelection(1)
		return nil, true
	case key.Matches(msg, keys.Undo):
		return m.undo(), true
	case key.Matches(msg, keys.Redo):
		return m.redo(), true
	case key.Matches(msg, keys.Submit):
		line := m.input.Value()
		m.input.Reset()
		return m.run(line), true
	}
	return nil, false
}

func (m *Model) confirmBust(msg tea.KeyMsg) tea.Cmd {
	p := m.pendingBust
	switch {
	case key.Matches(msg, keys.Yes):
		m.pendingBust = nil
		if m.ctrl.BustPlayer(p.playerID) {
			m.play(sound.CueBust)
			return m.info("%s busts", p.name)
		}
		return m.fail("%s cannot bust now", p.name)
	case key.Matches(msg, keys.No):
		m.pendingBust = nil
		return m.info("%s keeps the hand", p.name)
	}
	return nil
}

func (m *Model) moveSelection(delta int) {
	g := m.ctrl.Game()
	if g == nil || len(g.Players) == 0 {
		return
	}
	n := len(g.Players)
	m.selected = ((m.selected+delta)%n + n) % n
}

// selectedPlayer clamps the selection to the roster and returns that player.
func (m *Model) selectedPlayer(g *game.Game) *game.Player {
	if g == nil || len(g.Players) == 0 {
		return nil
	}
	m.selected = min(max(m.selected, 0), len(g.Players)-1)
	return g.Players[m.selected]
}

// syncPhase returns to the table, or to the game over screen once someone
// has reached the target.
func (m *Model) syncPhase() {
	if g := m.ctrl.Game(); g != nil && g.HasWinner() {
		m.phase = PhaseGameOver
		return
	}
	m.phase = PhaseTable
}

func (m *Model) play(cue sound.Cue) {
	if m.sound != nil && cue != "" {
		m.sound.Play(cue)
	}
}

func (m *Model) setStatus(isError bool, format string, args ...any) tea.Cmd {
	m.statusID++
	m.status = fmt.Sprintf(format, args...)
	m.statusError = isError
	id := m.statusID
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}

func (m *Model) info(format string, args ...any) tea.Cmd {
	return m.setStatus(false, format, args...)
}

func (m *Model) fail(format string, args ...any) tea.Cmd {
	return m.setStatus(true, format, args...)
}

func (m *Model) fetchLeaderboard() tea.Cmd {
	board := m.board
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		entries, err := board.Top(ctx, leaderboardLimit)
		return LeaderboardMsg{Entries: entries, Err: err}
	}
}

// View renders the current phase.
func (m *Model) View() string {
	g := m.ctrl.Game()
	if g == nil {
		if m.finished {
			return common.DocStyle.Render("Game recorded. Thanks for playing!\n")
		}
		return common.DocStyle.Render("No game loaded.\n")
	}

	var sb strings.Builder
	switch m.phase {
	case PhaseStats:
		sb.WriteString(view.StatsView(stats.ForGame(g), m.width))
		return common.DocStyle.Render(sb.String())
	case PhaseLeaderboard:
		sb.WriteString(view.LeaderboardView(m.leaderboard, m.width))
		return common.DocStyle.Render(sb.String())
	case PhaseHelp:
		sb.WriteString(view.HelpView(m.width))
		return common.DocStyle.Render(sb.String())
	case PhaseGameOver:
		sb.WriteString(view.GameOverView(g, stats.ForGame(g), m.width))
	default:
		m.selectedPlayer(g)
		sb.WriteString(view.TableView(view.Table{
			Game:      g,
			Inventory: m.ctrl.Inventory(),
			Selected:  m.selected,
			Width:     m.width,
		}))
	}

	sb.WriteString("\n")
	if p := m.pendingBust; p != nil {
		sb.WriteString(view.PendingBustBanner(p.name, p.number))
		sb.WriteString("\n")
	}
	if m.status != "" {
		style := common.InfoStyle
		if m.statusError {
			style = common.ErrorStyle
		}
		sb.WriteString(style.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(common.PromptStyle.Render(m.input.View()))
	return common.DocStyle.Render(sb.String())
}
