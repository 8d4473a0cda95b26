package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/palemoky/flip-seven/internal/game/round"
)

// NewPlayer seats a player with a fresh id and an empty round.
func NewPlayer(name string, seat int) *Player {
	return &Player{
		ID:      uuid.NewString(),
		Name:    NormalizeName(name, seat),
		Current: round.PlayerRound{State: round.InRound},
	}
}

// NormalizeName trims and shortens a name; blank names become "Player N"
// where N is the 1-based seat.
func NormalizeName(name string, seat int) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxNameLength {
		name = strings.TrimSpace(string(r[:MaxNameLength]))
	}
	if name == "" {
		return fmt.Sprintf("Player %d", seat+1)
	}
	return name
}

// Names returns the player names in seat order.
func (g *Game) Names() []string {
	names := make([]string, len(g.Players))
	for i, p := range g.Players {
		names[i] = p.Name
	}
	return names
}

// Rename applies new names by player id. Every id must be known and at least
// one name must actually change.
func (g *Game) Rename(names map[string]string) bool {
	if len(names) == 0 {
		return false
	}
	normalized := make(map[string]string, len(names))
	changed := false
	for id, name := range names {
		idx := g.PlayerIndex(id)
		if idx < 0 {
			return false
		}
		n := NormalizeName(name, idx)
		normalized[id] = n
		if g.Players[idx].Name != n {
			changed = true
		}
	}
	if !changed {
		return false
	}
	for id, n := range normalized {
		g.Player(id).Name = n
	}
	return true
}

// Reorder reseats the players. ids must be a permutation of the current
// roster that differs from the current order.
func (g *Game) Reorder(ids []string) bool {
	if len(ids) != len(g.Players) {
		return false
	}
	seen := make(map[string]bool, len(ids))
	reordered := make([]*Player, 0, len(ids))
	same := true
	for i, id := range ids {
		p := g.Player(id)
		if p == nil || seen[id] {
			return false
		}
		seen[id] = true
		reordered = append(reordered, p)
		if g.Players[i].ID != id {
			same = false
		}
	}
	if same {
		return false
	}
	g.Players = reordered
	return true
}

// AddPlayer seats a new player with a zero total at the end of the table.
func (g *Game) AddPlayer(name string) (*Player, bool) {
	if len(g.Players) >= MaxPlayers {
		return nil, false
	}
	p := NewPlayer(name, len(g.Players))
	g.Players = append(g.Players, p)
	return p, true
}

// RemovePlayer takes a player off the table. Their past round results stay
// in the history.
func (g *Game) RemovePlayer(id string) bool {
	if len(g.Players) <= MinPlayers {
		return false
	}
	idx := g.PlayerIndex(id)
	if idx < 0 {
		return false
	}
	g.Players = append(g.Players[:idx], g.Players[idx+1:]...)
	return true
}

// Rematch returns a new game with the same roster, target and deck, all
// totals at zero and no history. Player ids are kept.
func (g *Game) Rematch() *Game {
	out := &Game{
		Players:     make([]*Player, len(g.Players)),
		TargetScore: g.TargetScore,
		DeckProfile: g.DeckProfile.Clone(),
	}
	for i, p := range g.Players {
		out.Players[i] = &Player{
			ID:      p.ID,
			Name:    p.Name,
			Current: round.PlayerRound{State: round.InRound},
		}
	}
	return out
}
