// Package model is the bubbletea model that drives the scorekeeper.
package model

import (
	"context"

	"github.com/charmbracelet/bubbles/key"

	"github.com/palemoky/flip-seven/internal/sound"
	"github.com/palemoky/flip-seven/internal/storage"
)

// Phase is the screen being shown.
type Phase int

const (
	PhaseTable Phase = iota
	PhaseGameOver
	PhaseStats
	PhaseLeaderboard
	PhaseHelp
)

// SoundPlayer plays audio cues.
type SoundPlayer interface {
	Play(cue sound.Cue)
}

// LeaderboardSource lists lifetime records.
type LeaderboardSource interface {
	Top(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error)
}

// --- Tea Messages ---

// ClearStatusMsg clears the status line if it still shows message id.
type ClearStatusMsg struct {
	ID int
}

// LeaderboardMsg carries a leaderboard fetch result.
type LeaderboardMsg struct {
	Entries []storage.LeaderboardEntry
	Err     error
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Submit key.Binding
	Undo   key.Binding
	Redo   key.Binding
	Yes    key.Binding
	No     key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "previous player")),
	Down:   key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓", "next player")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run command")),
	Undo:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "undo")),
	Redo:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm bust")),
	No:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "keep hand")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}
