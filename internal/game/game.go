// Package game is the aggregate state of a Flip 7 game: the roster, each
// player's current round and the history of finished rounds.
package game

import (
	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/deck"
	"github.com/palemoky/flip-seven/internal/game/round"
	"github.com/palemoky/flip-seven/internal/game/rule"
)

const (
	MinPlayers = 2
	MaxPlayers = 8

	MinTargetScore     = 50
	MaxTargetScore     = 5000
	DefaultTargetScore = 200

	MaxNameLength = 20
)

// Game is the whole scorekeeping state for one table.
type Game struct {
	Players     []*Player        `json:"players"`
	TargetScore int              `json:"target_score"`
	DeckProfile card.DeckProfile `json:"deck_profile"`
	History     []round.Round    `json:"game_history"`
}

// New starts a game for the given names. Blank names become "Player N".
// It fails when the roster is outside MinPlayers..MaxPlayers.
func New(names []string, targetScore int, profile card.DeckProfile) (*Game, bool) {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return nil, false
	}
	g := &Game{
		Players:     make([]*Player, 0, len(names)),
		TargetScore: ClampTargetScore(targetScore),
		DeckProfile: profile.Clone(),
	}
	for i, name := range names {
		g.Players = append(g.Players, NewPlayer(name, i))
	}
	return g, true
}

// ClampTargetScore keeps a target within MinTargetScore..MaxTargetScore.
func ClampTargetScore(target int) int {
	return min(max(target, MinTargetScore), MaxTargetScore)
}

// CurrentRoundNumber is the number of the round being played.
func (g *Game) CurrentRoundNumber() int {
	return len(g.History) + 1
}

// Player looks a player up by id.
func (g *Game) Player(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerIndex returns the seat of a player, or -1.
func (g *Game) PlayerIndex(id string) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Hands returns every player's current hand in seat order.
func (g *Game) Hands() []card.Hand {
	hands := make([]card.Hand, len(g.Players))
	for i, p := range g.Players {
		hands[i] = p.Current.Hand
	}
	return hands
}

// Inventory reports deck availability for the current round.
func (g *Game) Inventory() *deck.Inventory {
	return deck.NewInventory(g.DeckProfile, g.Hands()...)
}

// RoundScore is what a player would score if the round ended now.
func (g *Game) RoundScore(playerID string) (int, bool) {
	p := g.Player(playerID)
	if p == nil {
		return 0, false
	}
	return p.RoundScore(), true
}

// HasWinner reports whether someone has reached the target score.
func (g *Game) HasWinner() bool {
	for _, p := range g.Players {
		if p.TotalScore >= g.TargetScore {
			return true
		}
	}
	return false
}

// Winners are all players tied at the highest total once the target is
// reached. Empty while nobody has reached it.
func (g *Game) Winners() []*Player {
	if !g.HasWinner() {
		return nil
	}
	return g.Leaders()
}

// Leaders are all players tied at the highest total.
func (g *Game) Leaders() []*Player {
	if len(g.Players) == 0 {
		return nil
	}
	best := g.Players[0].TotalScore
	for _, p := range g.Players[1:] {
		best = max(best, p.TotalScore)
	}
	var leaders []*Player
	for _, p := range g.Players {
		if p.TotalScore == best {
			leaders = append(leaders, p)
		}
	}
	return leaders
}

// RoundInProgress reports whether anything has happened in the current round.
func (g *Game) RoundInProgress() bool {
	for _, p := range g.Players {
		if !p.Current.Hand.IsEmpty() || p.Current.State != round.InRound || p.Current.ManualScoreOverride != nil {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	out := &Game{
		TargetScore: g.TargetScore,
		DeckProfile: g.DeckProfile.Clone(),
	}
	if g.Players != nil {
		out.Players = make([]*Player, len(g.Players))
		for i, p := range g.Players {
			out.Players[i] = p.Clone()
		}
	}
	if g.History != nil {
		out.History = make([]round.Round, len(g.History))
		for i, r := range g.History {
			out.History[i] = r.Clone()
		}
	}
	return out
}

// Player is one seat at the table.
type Player struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	TotalScore int               `json:"total_score"`
	Current    round.PlayerRound `json:"current_round"`
}

// RoundScore scores the player's current round.
func (p *Player) RoundScore() int {
	return rule.Score(p.Current.Hand, p.Current.State, p.Current.ManualScoreOverride)
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	return &Player{
		ID:         p.ID,
		Name:       p.Name,
		TotalScore: p.TotalScore,
		Current:    p.Current.Clone(),
	}
}
