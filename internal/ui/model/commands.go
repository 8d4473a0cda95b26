package model

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/game/round"
	"github.com/palemoky/flip-seven/internal/sound"
	"github.com/palemoky/flip-seven/internal/ui/input"
)

const finishTimeout = 5 * time.Second

// run parses and applies one command line against the selected player.
func (m *Model) run(line string) tea.Cmd {
	cmd, err := input.Parse(line)
	if errors.Is(err, input.ErrEmpty) {
		return nil
	}
	if err != nil {
		return m.fail("%v (type help)", err)
	}

	g := m.ctrl.Game()
	p := m.selectedPlayer(g)
	if p == nil {
		return m.fail("no game loaded")
	}

	switch cmd.Kind {
	case input.KindDraw:
		return m.draw(p, cmd.Number)
	case input.KindDiscard:
		return m.result(m.ctrl.RemoveCardFromPlayer(p.ID, cmd.Number), "%s has no %d", p.Name, cmd.Number)
	case input.KindAddModifier:
		return m.result(m.ctrl.AddModifierToPlayer(p.ID, cmd.Number), "no +%d card for %s", cmd.Number, p.Name)
	case input.KindRemoveModifier:
		return m.result(m.ctrl.RemoveModifierFromPlayer(p.ID, cmd.Number), "%s has no +%d", p.Name, cmd.Number)
	case input.KindAddMultiplier:
		return m.result(m.ctrl.AddMultiplierToPlayer(p.ID), "no x2 card for %s", p.Name)
	case input.KindRemoveMultiplier:
		return m.result(m.ctrl.RemoveMultiplierFromPlayer(p.ID), "%s has no x2", p.Name)
	case input.KindSetState:
		if !m.ctrl.SetPlayerState(p.ID, cmd.State) {
			return m.fail("%s cannot go from %s to %s", p.Name, p.Current.State, cmd.State)
		}
		m.play(sound.CueForState(cmd.State))
		return nil
	case input.KindSetOverride:
		return m.result(m.ctrl.SetManualScoreOverride(p.ID, cmd.Number), "score unchanged")
	case input.KindClearOverride:
		return m.result(m.ctrl.ClearManualScoreOverride(p.ID), "%s has no manual score", p.Name)
	case input.KindEndRound:
		return m.endRound()
	case input.KindResetRound:
		return m.result(m.ctrl.StartNewRound(), "nothing to reset")
	case input.KindUndo:
		return m.undo()
	case input.KindRedo:
		return m.redo()
	case input.KindStats:
		m.phase = PhaseStats
		return nil
	case input.KindLeaderboard:
		if m.board == nil {
			return m.fail("leaderboard is off")
		}
		return m.fetchLeaderboard()
	case input.KindHelp:
		m.phase = PhaseHelp
		return nil
	case input.KindTarget:
		return m.result(m.ctrl.UpdateTargetScore(cmd.Number), "target unchanged")
	case input.KindRename:
		return m.result(m.ctrl.UpdatePlayerNames(map[string]string{p.ID: cmd.Text}), "name unchanged")
	case input.KindAddPlayer:
		_, ok := m.ctrl.AddPlayer(cmd.Text)
		return m.result(ok, "table is full")
	case input.KindRemovePlayer:
		return m.result(m.ctrl.RemovePlayer(p.ID), "a game needs at least %d players", game.MinPlayers)
	case input.KindMove:
		return m.move(g, p, cmd.Number)
	case input.KindPlayAgain:
		if !g.HasWinner() {
			return m.fail("nobody has won yet")
		}
		m.ctrl.PlayAgain()
		m.selected = 0
		m.phase = PhaseTable
		return m.info("rematch! first to %d", g.TargetScore)
	case input.KindFinish:
		return m.finish()
	case input.KindQuit:
		return tea.Quit
	}
	return nil
}

// result syncs the phase after a mutation and reports a failure.
func (m *Model) result(ok bool, format string, args ...any) tea.Cmd {
	m.syncPhase()
	if !ok {
		return m.fail(format, args...)
	}
	return nil
}

func (m *Model) draw(p *game.Player, n int) tea.Cmd {
	hadBonus := p.Current.Hand.HasBonus()
	switch m.ctrl.AddCardToPlayer(p.ID, n) {
	case game.DrawDuplicate:
		m.pendingBust = &pendingBust{playerID: p.ID, name: p.Name, number: n}
		return nil
	case game.DrawRejected:
		if p.Current.State != round.InRound {
			return m.fail("%s is %s", p.Name, p.Current.State)
		}
		return m.fail("no %d left in the deck", n)
	}
	if !hadBonus {
		if cur := m.ctrl.Game().Player(p.ID); cur != nil && cur.Current.Hand.HasBonus() {
			m.play(sound.CueFlipSeven)
			return m.info("%s flips 7!", p.Name)
		}
	}
	return nil
}

func (m *Model) endRound() tea.Cmd {
	finished, ok := m.ctrl.EndRound()
	if !ok {
		return m.fail("no game loaded")
	}
	m.syncPhase()
	if m.phase == PhaseGameOver {
		m.play(sound.CueWin)
	} else {
		m.play(sound.CueRoundEnd)
	}
	return m.info("round %d scored", finished.RoundNumber)
}

func (m *Model) move(g *game.Game, p *game.Player, seat int) tea.Cmd {
	if seat < 1 || seat > len(g.Players) {
		return m.fail("seat must be 1 to %d", len(g.Players))
	}
	ids := make([]string, 0, len(g.Players))
	for _, other := range g.Players {
		if other.ID != p.ID {
			ids = append(ids, other.ID)
		}
	}
	ids = append(ids[:seat-1], append([]string{p.ID}, ids[seat-1:]...)...)
	if !m.ctrl.ReorderPlayers(ids) {
		return m.fail("%s is already in seat %d", p.Name, seat)
	}
	m.selected = seat - 1
	return nil
}

func (m *Model) undo() tea.Cmd {
	if !m.ctrl.Undo() {
		return m.fail("nothing to undo")
	}
	m.pendingBust = nil
	m.syncPhase()
	return nil
}

func (m *Model) redo() tea.Cmd {
	if !m.ctrl.Redo() {
		return m.fail("nothing to redo")
	}
	m.syncPhase()
	return nil
}

func (m *Model) finish() tea.Cmd {
	ctx, cancel := context.WithTimeout(context.Background(), finishTimeout)
	defer cancel()
	if _, ok := m.ctrl.EndGame(ctx); !ok {
		return m.fail("no game loaded")
	}
	m.finished = true
	return tea.Quit
}
