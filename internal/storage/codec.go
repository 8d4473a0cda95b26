package storage

import (
	"encoding/json"
	"fmt"

	"github.com/palemoky/flip-seven/internal/apperrors"
	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/round"
)

// EncodeGame serializes the live game document.
func EncodeGame(g *game.Game) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to encode game: %w", err)
	}
	return data, nil
}

// DecodeGame parses a saved game. Structurally broken documents, including
// ones written by something other than this program, fail with
// apperrors.ErrCorruptSave.
func DecodeGame(data []byte) (*game.Game, error) {
	var g game.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptSave, err)
	}
	if err := checkGame(&g); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptSave, err)
	}
	return &g, nil
}

func checkGame(g *game.Game) error {
	if n := len(g.Players); n < game.MinPlayers || n > game.MaxPlayers {
		return fmt.Errorf("game has %d players", n)
	}
	seen := make(map[string]bool, len(g.Players))
	for i, p := range g.Players {
		if p == nil || p.ID == "" {
			return fmt.Errorf("player %d has no id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate player id %s", p.ID)
		}
		seen[p.ID] = true
		if !p.Current.State.Valid() {
			return fmt.Errorf("player %s has state %d", p.ID, int(p.Current.State))
		}
		if err := p.Current.Hand.Validate(); err != nil {
			return fmt.Errorf("player %s: %w", p.ID, err)
		}
	}

	// Older saves may lack a deck profile.
	if g.DeckProfile.NumberCards == nil && g.DeckProfile.Modifiers == nil {
		g.DeckProfile = card.DefaultDeckProfile()
	}
	if err := g.DeckProfile.Validate(); err != nil {
		return err
	}
	g.TargetScore = game.ClampTargetScore(g.TargetScore)
	return checkHistory(g.History)
}

func checkHistory(history []round.Round) error {
	for i, r := range history {
		for _, res := range r.Results {
			if res.PlayerID == "" {
				return fmt.Errorf("round %d has a result without player id", i+1)
			}
			if res.HandSnapshot != nil {
				if err := res.HandSnapshot.Validate(); err != nil {
					return fmt.Errorf("round %d, player %s: %w", i+1, res.PlayerID, err)
				}
			}
		}
	}
	return nil
}

// EncodeRoster serializes the default player names.
func EncodeRoster(names []string) ([]byte, error) {
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// DecodeRoster parses the default player names.
func DecodeRoster(data []byte) ([]string, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptSave, err)
	}
	return names, nil
}

// EncodeDeckProfile serializes the default deck counts.
func EncodeDeckProfile(profile card.DeckProfile) ([]byte, error) {
	return json.Marshal(profile)
}

// DecodeDeckProfile parses and validates the default deck counts.
func DecodeDeckProfile(data []byte) (card.DeckProfile, error) {
	var profile card.DeckProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return card.DeckProfile{}, apperrors.Wrap(apperrors.ErrCorruptSave, err)
	}
	if err := profile.Validate(); err != nil {
		return card.DeckProfile{}, apperrors.Wrap(apperrors.ErrCorruptSave, err)
	}
	return profile, nil
}
