package model

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/round"
	"github.com/palemoky/flip-seven/internal/session"
	"github.com/palemoky/flip-seven/internal/sound"
	"github.com/palemoky/flip-seven/internal/storage"
	"github.com/palemoky/flip-seven/internal/testutil"
)

type recordingSound struct {
	cues []sound.Cue
}

func (r *recordingSound) Play(cue sound.Cue) { r.cues = append(r.cues, cue) }

type fakeBoard struct {
	entries []storage.LeaderboardEntry
	err     error
}

func (f fakeBoard) Top(context.Context, int) ([]storage.LeaderboardEntry, error) {
	return f.entries, f.err
}

func newTestModel(t *testing.T, target int, opts session.Options) (*Model, *session.Controller, *recordingSound) {
	t.Helper()
	log, _ := test.NewNullLogger()
	opts.Logger = log
	ctrl := session.NewController(opts)
	require.True(t, ctrl.NewGame([]string{"Ann", "Bob", "Cid"}, target, card.DefaultDeckProfile()))

	snd := &recordingSound{}
	return New(Options{Controller: ctrl, Sound: snd}), ctrl, snd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// submit types a command line and presses enter, returning the command.
func submit(m *Model, line string) tea.Cmd {
	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestModel_SelectionWraps(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, 200, session.Options{})
	assert.Equal(t, 0, m.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Selected())
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 2, m.Selected())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.Selected())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, m.Selected())
}

func TestModel_DrawCommandsTargetSelectedPlayer(t *testing.T) {
	t.Parallel()

	m, ctrl, _ := newTestModel(t, 200, session.Options{})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	submit(m, "7")
	submit(m, "+4")
	submit(m, "x2")

	g := ctrl.Game()
	assert.True(t, g.Players[0].Current.Hand.IsEmpty())
	bob := g.Players[1].Current.Hand
	assert.True(t, bob.HasNumber(7))
	assert.Equal(t, 1, bob.ModifierCount(4))
	assert.Equal(t, 1, bob.Multipliers)
	assert.Equal(t, 18, g.Players[1].RoundScore())

	submit(m, "-x2")
	submit(m, "-+4")
	submit(m, "-7")
	assert.True(t, ctrl.Game().Players[1].Current.Hand.IsEmpty())
}

func TestModel_FlipSevenCue(t *testing.T) {
	t.Parallel()

	m, ctrl, snd := newTestModel(t, 200, session.Options{})
	for _, n := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		submit(m, n)
	}

	assert.True(t, ctrl.Game().Players[0].Current.Hand.HasBonus())
	assert.Equal(t, []sound.Cue{sound.CueFlipSeven}, snd.cues)
	assert.Equal(t, "Ann flips 7!", m.Status())
}

func TestModel_DuplicateDrawAsksBeforeBusting(t *testing.T) {
	t.Parallel()

	m, ctrl, snd := newTestModel(t, 200, session.Options{})
	submit(m, "5")
	submit(m, "5")

	require.NotNil(t, m.pendingBust)
	assert.Contains(t, m.View(), "second 5")
	assert.Equal(t, round.InRound, ctrl.Game().Players[0].Current.State)

	m.Update(runes("n"))
	assert.Nil(t, m.pendingBust)
	assert.Equal(t, round.InRound, ctrl.Game().Players[0].Current.State)
	assert.Empty(t, m.input.Value(), "the answer is not typed into the prompt")

	submit(m, "5")
	m.Update(runes("y"))
	assert.Nil(t, m.pendingBust)
	assert.Equal(t, round.Busted, ctrl.Game().Players[0].Current.State)
	assert.Equal(t, []sound.Cue{sound.CueBust}, snd.cues)

	// undo reverts the bust but the duplicate draw itself left no entry
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	p := ctrl.Game().Players[0]
	assert.Equal(t, round.InRound, p.Current.State)
	assert.Equal(t, []int{5}, p.Current.Hand.Numbers.Values())
}

func TestModel_StateCommands(t *testing.T) {
	t.Parallel()

	m, ctrl, snd := newTestModel(t, 200, session.Options{})
	submit(m, "bank")
	assert.Equal(t, round.Banked, ctrl.Game().Players[0].Current.State)

	submit(m, "freeze")
	assert.Equal(t, round.Banked, ctrl.Game().Players[0].Current.State, "banked cannot freeze")
	assert.Contains(t, m.Status(), "cannot go from")

	submit(m, "unbank")
	submit(m, "freeze")
	assert.Equal(t, round.Frozen, ctrl.Game().Players[0].Current.State)
	assert.Equal(t, []sound.Cue{sound.CueBank, sound.CueFreeze}, snd.cues)
}

func TestModel_OverrideAndTarget(t *testing.T) {
	t.Parallel()

	m, ctrl, _ := newTestModel(t, 200, session.Options{})
	submit(m, "score 42")
	score, ok := ctrl.ScoreFor(ctrl.Game().Players[0].ID)
	require.True(t, ok)
	assert.Equal(t, 42, score)

	submit(m, "clear")
	score, _ = ctrl.ScoreFor(ctrl.Game().Players[0].ID)
	assert.Equal(t, 0, score)

	submit(m, "target 300")
	assert.Equal(t, 300, ctrl.Game().TargetScore)
}

func TestModel_RosterCommands(t *testing.T) {
	t.Parallel()

	m, ctrl, _ := newTestModel(t, 200, session.Options{})

	submit(m, "name Annie")
	assert.Equal(t, []string{"Annie", "Bob", "Cid"}, ctrl.Game().Names())

	submit(m, "move 3")
	assert.Equal(t, []string{"Bob", "Cid", "Annie"}, ctrl.Game().Names())
	assert.Equal(t, 2, m.Selected())

	submit(m, "move 9")
	assert.Contains(t, m.Status(), "seat must be 1 to 3")

	submit(m, "add Dee")
	assert.Equal(t, []string{"Bob", "Cid", "Annie", "Dee"}, ctrl.Game().Names())

	submit(m, "remove")
	assert.Equal(t, []string{"Bob", "Cid", "Dee"}, ctrl.Game().Names())
}

func TestModel_EndRoundAndWin(t *testing.T) {
	t.Parallel()

	m, ctrl, snd := newTestModel(t, 50, session.Options{})

	submit(m, "3")
	submit(m, "end")
	assert.Equal(t, PhaseTable, m.Phase())
	assert.Equal(t, "round 1 scored", m.Status())
	assert.Equal(t, 2, ctrl.RoundNumber())

	for _, n := range []string{"12", "11", "10", "9", "8"} {
		submit(m, n)
	}
	submit(m, "end")
	assert.Equal(t, PhaseGameOver, m.Phase())
	assert.Equal(t, []sound.Cue{sound.CueRoundEnd, sound.CueWin}, snd.cues)
	assert.Contains(t, m.View(), "Ann wins!")

	submit(m, "undo")
	assert.Equal(t, PhaseTable, m.Phase(), "undo reopens the winning round")
	submit(m, "redo")
	assert.Equal(t, PhaseGameOver, m.Phase())

	submit(m, "again")
	assert.Equal(t, PhaseTable, m.Phase())
	g := ctrl.Game()
	assert.Empty(t, g.History)
	for _, p := range g.Players {
		assert.Equal(t, 0, p.TotalScore)
	}
	assert.False(t, ctrl.CanUndo(), "a rematch starts fresh history")
}

func TestModel_PlayAgainNeedsWinner(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, 200, session.Options{})
	submit(m, "again")
	assert.Equal(t, "nobody has won yet", m.Status())
}

func TestModel_ResetRound(t *testing.T) {
	t.Parallel()

	m, ctrl, _ := newTestModel(t, 200, session.Options{})
	submit(m, "reset")
	assert.Equal(t, "nothing to reset", m.Status())

	submit(m, "9")
	submit(m, "reset")
	assert.True(t, ctrl.Game().Players[0].Current.Hand.IsEmpty())
	assert.Equal(t, 1, ctrl.RoundNumber())
}

func TestModel_UndoRedoKeys(t *testing.T) {
	t.Parallel()

	m, ctrl, _ := newTestModel(t, 200, session.Options{})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, "nothing to undo", m.Status())

	submit(m, "4")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.True(t, ctrl.Game().Players[0].Current.Hand.IsEmpty())
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.True(t, ctrl.Game().Players[0].Current.Hand.HasNumber(4))
}

func TestModel_UnknownCommand(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, 200, session.Options{})
	cmd := submit(m, "shuffle")
	assert.NotNil(t, cmd, "the status line clears itself")
	assert.True(t, m.statusError)
	assert.Contains(t, m.Status(), "unknown command")

	assert.Nil(t, submit(m, "   "))
}

func TestModel_ClearStatus(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, 200, session.Options{})
	submit(m, "shuffle")
	first := m.statusID
	submit(m, "deal")

	m.Update(ClearStatusMsg{ID: first})
	assert.NotEmpty(t, m.Status(), "a stale tick leaves the newer message")

	m.Update(ClearStatusMsg{ID: m.statusID})
	assert.Empty(t, m.Status())
}

func TestModel_Screens(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, 200, session.Options{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.View(), "Round 1")
	assert.Contains(t, m.View(), "Deck remaining")

	submit(m, "stats")
	assert.Equal(t, PhaseStats, m.Phase())
	assert.Contains(t, m.View(), "Game stats")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, PhaseTable, m.Phase())

	submit(m, "help")
	assert.Equal(t, PhaseHelp, m.Phase())
	assert.Contains(t, m.View(), "Commands")
	m.Update(runes("x"))
	assert.Equal(t, PhaseHelp, m.Phase(), "only esc leaves")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, PhaseTable, m.Phase())
}

func TestModel_Leaderboard(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, 200, session.Options{})
	assert.Nil(t, m.board)
	submit(m, "board")
	assert.Equal(t, "leaderboard is off", m.Status())

	m.board = fakeBoard{entries: []storage.LeaderboardEntry{{Rank: 1, Name: "Ann", Wins: 3, Games: 4, WinRate: 75}}}
	cmd := submit(m, "board")
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, LeaderboardMsg{}, msg)

	m.Update(msg)
	assert.Equal(t, PhaseLeaderboard, m.Phase())
	assert.Contains(t, m.View(), "Ann")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(LeaderboardMsg{Err: errors.New("redis down")})
	assert.Equal(t, PhaseTable, m.Phase())
	assert.Contains(t, m.Status(), "redis down")
}

func TestModel_Finish(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	rec := &testutil.MockRecorder{}
	rec.On("RecordFinishedGame", mock.Anything, mock.Anything).Return(nil).Once()

	m, ctrl, _ := newTestModel(t, 200, session.Options{Saver: store, Recorders: []session.Recorder{rec}})
	submit(m, "6")
	submit(m, "end")

	cmd := submit(m, "finish")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Finished())
	assert.False(t, ctrl.HasGame())
	assert.Contains(t, m.View(), "Game recorded")
	rec.AssertExpectations(t)

	saved, err := store.LoadGame(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved, "the live save is removed")
}

func TestModel_QuitKeepsGame(t *testing.T) {
	t.Parallel()

	m, ctrl, _ := newTestModel(t, 200, session.Options{})
	cmd := submit(m, "quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, ctrl.HasGame())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
