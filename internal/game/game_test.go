package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/round"
)

func newTestGame(t *testing.T, names ...string) *Game {
	t.Helper()
	if len(names) == 0 {
		names = []string{"Ann", "Bob", "Cid"}
	}
	g, ok := New(names, 200, card.DefaultDeckProfile())
	require.True(t, ok)
	return g
}

func TestNew(t *testing.T) {
	t.Parallel()

	g, ok := New([]string{"Ann", "  ", strings.Repeat("x", 30)}, 10, card.DefaultDeckProfile())
	require.True(t, ok)

	assert.Len(t, g.Players, 3)
	assert.Equal(t, "Ann", g.Players[0].Name)
	assert.Equal(t, "Player 2", g.Players[1].Name, "blank names get a seat name")
	assert.Len(t, g.Players[2].Name, MaxNameLength)
	assert.Equal(t, MinTargetScore, g.TargetScore, "target is clamped")
	assert.Equal(t, 1, g.CurrentRoundNumber())
	assert.NotEqual(t, g.Players[0].ID, g.Players[1].ID)
	for _, p := range g.Players {
		assert.Equal(t, 0, p.TotalScore)
		assert.Equal(t, round.InRound, p.Current.State)
		assert.True(t, p.Current.Hand.IsEmpty())
	}
}

func TestNew_RosterBounds(t *testing.T) {
	t.Parallel()

	_, ok := New([]string{"solo"}, 200, card.DefaultDeckProfile())
	assert.False(t, ok)

	_, ok = New(make([]string, MaxPlayers+1), 200, card.DefaultDeckProfile())
	assert.False(t, ok)

	g, ok := New(make([]string, MaxPlayers), 200, card.DefaultDeckProfile())
	require.True(t, ok)
	assert.Equal(t, "Player 8", g.Players[7].Name)
}

func TestClampTargetScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50, ClampTargetScore(0))
	assert.Equal(t, 5000, ClampTargetScore(9999))
	assert.Equal(t, 300, ClampTargetScore(300))
}

func TestGame_DrawNumber(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	ann, bob, cid := g.Players[0].ID, g.Players[1].ID, g.Players[2].ID

	assert.Equal(t, DrawAdded, g.DrawNumber(ann, 2))
	assert.Equal(t, DrawDuplicate, g.DrawNumber(ann, 2))
	assert.Equal(t, 1, g.Players[0].Current.Hand.Numbers.Len(), "duplicate does not mutate")

	assert.Equal(t, DrawAdded, g.DrawNumber(bob, 2))
	assert.Equal(t, DrawRejected, g.DrawNumber(cid, 2), "both 2s are on the table")

	assert.Equal(t, DrawRejected, g.DrawNumber("nobody", 5))
	assert.Equal(t, DrawRejected, g.DrawNumber(ann, 13))

	require.True(t, g.SetState(ann, round.Banked))
	assert.Equal(t, DrawRejected, g.DrawNumber(ann, 9), "banked hands are closed")
}

func TestGame_ModifiersAndMultipliers(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	ann, bob := g.Players[0].ID, g.Players[1].ID

	assert.True(t, g.AddModifier(ann, 4))
	assert.False(t, g.AddModifier(bob, 4), "only one +4 in the deck")
	assert.False(t, g.AddModifier(ann, 3), "no +3 card")
	assert.False(t, g.RemoveModifier(bob, 4), "bob holds no +4")
	assert.True(t, g.RemoveModifier(ann, 4))
	assert.True(t, g.AddModifier(bob, 4), "returned card is available again")

	assert.True(t, g.AddMultiplier(ann))
	assert.False(t, g.AddMultiplier(bob))
	assert.False(t, g.RemoveMultiplier(bob))
	assert.True(t, g.RemoveMultiplier(ann))
	assert.False(t, g.RemoveMultiplier(ann))
}

func TestGame_DiscardNumber(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	ann := g.Players[0].ID

	assert.False(t, g.DiscardNumber(ann, 8))
	g.DrawNumber(ann, 8)
	assert.True(t, g.DiscardNumber(ann, 8))
	assert.True(t, g.Players[0].Current.Hand.IsEmpty())
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to round.State
		want     bool
	}{
		{round.InRound, round.Banked, true},
		{round.InRound, round.Busted, true},
		{round.InRound, round.Frozen, true},
		{round.Banked, round.InRound, true},
		{round.Busted, round.InRound, true},
		{round.Frozen, round.InRound, true},
		{round.InRound, round.InRound, false},
		{round.Banked, round.Busted, false},
		{round.Frozen, round.Banked, false},
		{round.InRound, round.State(9), false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestGame_Overrides(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	ann := g.Players[0].ID
	g.DrawNumber(ann, 10)

	assert.False(t, g.ClearOverride(ann))
	assert.True(t, g.SetOverride(ann, 42))
	assert.False(t, g.SetOverride(ann, 42), "same value is not a change")

	score, ok := g.RoundScore(ann)
	require.True(t, ok)
	assert.Equal(t, 42, score)

	g.SetState(ann, round.Busted)
	score, _ = g.RoundScore(ann)
	assert.Equal(t, 0, score, "bust beats override")

	assert.True(t, g.ClearOverride(ann))
	_, ok = g.RoundScore("ghost")
	assert.False(t, ok)
}

func TestGame_FinalizeRound(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	ann, bob, cid := g.Players[0].ID, g.Players[1].ID, g.Players[2].ID

	g.DrawNumber(ann, 5)
	g.DrawNumber(ann, 6)
	g.AddMultiplier(ann)
	g.AddModifier(ann, 10)
	g.SetState(ann, round.Banked)

	g.DrawNumber(bob, 12)
	g.SetState(bob, round.Busted)
	g.SetOverride(bob, 50)
	// cid never draws and is still in the round

	r := g.FinalizeRound()

	assert.Equal(t, 1, r.RoundNumber)
	require.Len(t, g.History, 1)
	require.Len(t, r.Results, 3)
	assert.Equal(t, 2, g.CurrentRoundNumber())

	annRes, _ := r.ResultFor(ann)
	assert.Equal(t, 32, annRes.RoundScore)
	assert.Equal(t, round.Banked, *annRes.State)
	assert.Equal(t, 32, *annRes.AutoScore)
	assert.Equal(t, "Ann", annRes.PlayerName)

	bobRes, _ := r.ResultFor(bob)
	assert.Equal(t, 0, bobRes.RoundScore)
	assert.True(t, bobRes.IsBusted())
	assert.Equal(t, 50, *bobRes.ManualScoreOverride)

	cidRes, _ := r.ResultFor(cid)
	assert.Equal(t, 0, cidRes.RoundScore)
	assert.Equal(t, round.Banked, *cidRes.State, "players still in the round bank by default")

	assert.Equal(t, 32, g.Players[0].TotalScore)
	for _, p := range g.Players {
		assert.True(t, p.Current.Hand.IsEmpty())
		assert.Equal(t, round.InRound, p.Current.State)
		assert.Nil(t, p.Current.ManualScoreOverride)
	}

	// the pool resets: every card is available again
	inv := g.Inventory()
	assert.Equal(t, 5, inv.RemainingNumber(5))
	assert.True(t, inv.CanAddMultiplier())
}

func TestGame_FinalizeRound_HistoryIsFrozen(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	ann := g.Players[0].ID
	g.DrawNumber(ann, 3)
	g.FinalizeRound()

	g.DrawNumber(ann, 4)
	snap := g.History[0].Results[0].HandSnapshot
	require.NotNil(t, snap)
	assert.Equal(t, []int{3}, snap.Numbers.Values(), "next round must not leak into the snapshot")
}

func TestGame_Winners(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	assert.False(t, g.HasWinner())
	assert.Nil(t, g.Winners())
	assert.Len(t, g.Leaders(), 3, "everyone tied at zero")

	g.Players[0].TotalScore = 210
	g.Players[1].TotalScore = 210
	g.Players[2].TotalScore = 199

	assert.True(t, g.HasWinner())
	winners := g.Winners()
	require.Len(t, winners, 2)
	assert.Equal(t, "Ann", winners[0].Name)
	assert.Equal(t, "Bob", winners[1].Name)
}

func TestGame_ResetRound(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	assert.False(t, g.ResetRound(), "nothing to reset")

	g.DrawNumber(g.Players[1].ID, 7)
	assert.True(t, g.ResetRound())
	assert.False(t, g.RoundInProgress())
	assert.Empty(t, g.History)
}

func TestGame_SetTargetAndDeck(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	assert.False(t, g.SetTargetScore(200))
	assert.True(t, g.SetTargetScore(10))
	assert.Equal(t, 50, g.TargetScore)
	assert.False(t, g.SetTargetScore(20), "clamps to the current value")

	assert.False(t, g.SetDeckProfile(card.DefaultDeckProfile()), "unchanged")

	bad := card.DefaultDeckProfile()
	bad.Multipliers = -1
	assert.False(t, g.SetDeckProfile(bad))

	smaller := card.DefaultDeckProfile()
	smaller.Multipliers = 3
	assert.True(t, g.SetDeckProfile(smaller))
	assert.Equal(t, 3, g.Inventory().RemainingMultipliers())
}

func TestGame_Clone(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	ann := g.Players[0].ID
	g.DrawNumber(ann, 9)
	g.AddModifier(ann, 2)
	g.SetOverride(ann, 11)
	g.FinalizeRound()
	g.DrawNumber(ann, 1)

	c := g.Clone()
	assert.Equal(t, g, c)

	c.Players[0].Current.Hand.AddNumber(2)
	c.Players[0].Name = "Changed"
	c.History[0].Results[0].RoundScore = 999
	c.DeckProfile.NumberCards[1] = 0

	assert.False(t, g.Players[0].Current.Hand.HasNumber(2))
	assert.Equal(t, "Ann", g.Players[0].Name)
	assert.Equal(t, 11, g.History[0].Results[0].RoundScore)
	assert.Equal(t, 1, g.DeckProfile.NumberCards[1])
}
