package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/flip-seven/internal/apperrors"
	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/round"
)

func newPlayedGame(t *testing.T) *game.Game {
	t.Helper()
	g, ok := game.New([]string{"Ann", "Bob"}, 200, card.DefaultDeckProfile())
	require.True(t, ok)

	ann, bob := g.Players[0].ID, g.Players[1].ID
	g.DrawNumber(ann, 5)
	g.DrawNumber(ann, 6)
	g.AddModifier(ann, 10)
	g.AddMultiplier(ann)
	g.DrawNumber(bob, 9)
	g.SetState(bob, round.Busted)
	g.FinalizeRound()

	g.DrawNumber(bob, 3)
	g.SetOverride(ann, 12)
	return g
}

func TestEncodeDecodeGame(t *testing.T) {
	t.Parallel()

	g := newPlayedGame(t)
	data, err := EncodeGame(g)
	require.NoError(t, err)

	decoded, err := DecodeGame(data)
	require.NoError(t, err)
	assert.Equal(t, g, decoded)
}

func TestDecodeGame_LegacyRoundResult(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"players": [
			{"id": "a", "name": "Ann", "total_score": 40, "current_round": {"hand": {"numbers": []}, "state": "in_round"}},
			{"id": "b", "name": "Bob", "total_score": 0, "current_round": {"hand": {"numbers": [4]}, "state": "in_round"}}
		],
		"target_score": 200,
		"deck_profile": {"number_cards": {"4": 4}, "additive_modifiers": {}, "multipliers": 1},
		"game_history": [
			{"round_number": 1, "results": [
				{"player_id": "a", "player_name": "Ann", "round_score": 40},
				{"player_id": "b", "player_name": "Bob", "round_score": 0}
			]}
		]
	}`)

	g, err := DecodeGame(data)
	require.NoError(t, err)
	require.Len(t, g.History, 1)

	ann, _ := g.History[0].ResultFor("a")
	bob, _ := g.History[0].ResultFor("b")
	assert.False(t, ann.IsBusted())
	assert.True(t, bob.IsBusted())
	assert.False(t, ann.HasFlipSeven())
	assert.Equal(t, 0, ann.MultiplierCount())
	assert.Nil(t, ann.AutoScore)
	assert.True(t, g.Players[1].Current.Hand.HasNumber(4))
}

func TestDecodeGame_MissingDeckProfile(t *testing.T) {
	t.Parallel()

	data := []byte(`{"players": [{"id": "a", "name": "A"}, {"id": "b", "name": "B"}], "target_score": 1}`)
	g, err := DecodeGame(data)
	require.NoError(t, err)
	assert.True(t, g.DeckProfile.Equal(card.DefaultDeckProfile()))
	assert.Equal(t, game.MinTargetScore, g.TargetScore)
}

func TestDecodeGame_Corrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"players": [`},
		{"wrong shape", `[1, 2, 3]`},
		{"one player", `{"players": [{"id": "a"}]}`},
		{"no players", `{"target_score": 200}`},
		{"missing id", `{"players": [{"id": "a"}, {"name": "B"}]}`},
		{"duplicate id", `{"players": [{"id": "a"}, {"id": "a"}]}`},
		{"unknown state", `{"players": [{"id": "a", "current_round": {"state": "asleep"}}, {"id": "b"}]}`},
		{"number out of range", `{"players": [{"id": "a", "current_round": {"hand": {"numbers": [13]}}}, {"id": "b"}]}`},
		{"unknown modifier", `{"players": [{"id": "a", "current_round": {"hand": {"modifiers": {"3": 1}}}}, {"id": "b"}]}`},
		{"negative multipliers", `{"players": [{"id": "a", "current_round": {"hand": {"multipliers": -3}}}, {"id": "b"}]}`},
		{"too many multipliers", `{"players": [{"id": "a", "current_round": {"hand": {"multipliers": 64}}}, {"id": "b"}]}`},
		{"negative modifier count", `{"players": [{"id": "a", "current_round": {"hand": {"modifiers": {"2": -4}}}}, {"id": "b"}]}`},
		{"zero modifier count", `{"players": [{"id": "a", "current_round": {"hand": {"modifiers": {"4": 0}}}}, {"id": "b"}]}`},
		{"bad snapshot", `{"players": [{"id": "a"}, {"id": "b"}], "game_history": [{"round_number": 1, "results": [{"player_id": "a", "round_score": 3, "hand_snapshot": {"numbers": [3], "multipliers": -1}}]}]}`},
		{"deck with too many multipliers", `{"players": [{"id": "a"}, {"id": "b"}], "deck_profile": {"number_cards": {"1": 1}, "multipliers": 99}}`},
		{"negative deck", `{"players": [{"id": "a"}, {"id": "b"}], "deck_profile": {"number_cards": {"1": -1}}}`},
		{"anonymous result", `{"players": [{"id": "a"}, {"id": "b"}], "game_history": [{"round_number": 1, "results": [{"round_score": 3}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := DecodeGame([]byte(tt.data))
			assert.Nil(t, g)
			assert.ErrorIs(t, err, apperrors.ErrCorruptSave)
		})
	}
}

func TestRosterCodec(t *testing.T) {
	t.Parallel()

	data, err := EncodeRoster(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	names, err := DecodeRoster([]byte(`["Ann","Bob"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob"}, names)

	_, err = DecodeRoster([]byte(`{"a":1}`))
	assert.ErrorIs(t, err, apperrors.ErrCorruptSave)
}

func TestDeckProfileCodec(t *testing.T) {
	t.Parallel()

	data, err := EncodeDeckProfile(card.DefaultDeckProfile())
	require.NoError(t, err)

	profile, err := DecodeDeckProfile(data)
	require.NoError(t, err)
	assert.True(t, profile.Equal(card.DefaultDeckProfile()))

	_, err = DecodeDeckProfile([]byte(`{"multipliers": -2}`))
	assert.ErrorIs(t, err, apperrors.ErrCorruptSave)
}
