package game

import (
	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/round"
	"github.com/palemoky/flip-seven/internal/game/rule"
)

// DrawResult is the outcome of drawing a number card for a player.
type DrawResult int

const (
	// DrawRejected means nothing changed: unknown player, finished hand or
	// no copy of the card left in the deck.
	DrawRejected DrawResult = iota
	// DrawAdded means the number went into the hand.
	DrawAdded
	// DrawDuplicate means the player already holds the number. The hand is
	// unchanged; committing the bust is the caller's call.
	DrawDuplicate
)

func (r DrawResult) String() string {
	switch r {
	case DrawAdded:
		return "added"
	case DrawDuplicate:
		return "duplicate"
	default:
		return "rejected"
	}
}

// editable returns the player if their hand may change this round.
func (g *Game) editable(playerID string) *Player {
	p := g.Player(playerID)
	if p == nil || !p.Current.State.Editable() {
		return nil
	}
	return p
}

// DrawNumber puts number n into a player's hand if the deck still has one.
func (g *Game) DrawNumber(playerID string, n int) DrawResult {
	p := g.editable(playerID)
	if p == nil || !card.ValidNumber(n) {
		return DrawRejected
	}
	if p.Current.Hand.HasNumber(n) {
		return DrawDuplicate
	}
	if !g.Inventory().CanAddNumber(n, p.Current.Hand) {
		return DrawRejected
	}
	p.Current.Hand.AddNumber(n)
	return DrawAdded
}

// DiscardNumber takes number n back out of a player's hand.
func (g *Game) DiscardNumber(playerID string, n int) bool {
	p := g.editable(playerID)
	if p == nil || !p.Current.Hand.HasNumber(n) {
		return false
	}
	p.Current.Hand.RemoveNumber(n)
	return true
}

// AddModifier gives a player a +v card if the deck still has one.
func (g *Game) AddModifier(playerID string, v int) bool {
	p := g.editable(playerID)
	if p == nil || !g.Inventory().CanAddModifier(v) {
		return false
	}
	p.Current.Hand.AddModifier(v)
	return true
}

// RemoveModifier takes a +v card back from a player.
func (g *Game) RemoveModifier(playerID string, v int) bool {
	p := g.editable(playerID)
	if p == nil || p.Current.Hand.ModifierCount(v) == 0 {
		return false
	}
	p.Current.Hand.RemoveModifier(v)
	return true
}

// AddMultiplier gives a player a x2 card if the deck still has one.
func (g *Game) AddMultiplier(playerID string) bool {
	p := g.editable(playerID)
	if p == nil || !g.Inventory().CanAddMultiplier() {
		return false
	}
	p.Current.Hand.AddMultiplier()
	return true
}

// RemoveMultiplier takes a x2 card back from a player.
func (g *Game) RemoveMultiplier(playerID string) bool {
	p := g.editable(playerID)
	if p == nil || p.Current.Hand.Multipliers == 0 {
		return false
	}
	p.Current.Hand.RemoveMultiplier()
	return true
}

// CanTransition reports whether a round state change is allowed: from
// InRound to any finished state, or from a finished state back to InRound.
func CanTransition(from, to round.State) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	return from == round.InRound || to == round.InRound
}

// SetState moves a player to another round state.
func (g *Game) SetState(playerID string, state round.State) bool {
	p := g.Player(playerID)
	if p == nil || !CanTransition(p.Current.State, state) {
		return false
	}
	p.Current.State = state
	return true
}

// SetOverride pins a player's round score to a manual value. A bust still
// scores zero.
func (g *Game) SetOverride(playerID string, score int) bool {
	p := g.Player(playerID)
	if p == nil {
		return false
	}
	if o := p.Current.ManualScoreOverride; o != nil && *o == score {
		return false
	}
	p.Current.ManualScoreOverride = &score
	return true
}

// ClearOverride drops a player's manual round score.
func (g *Game) ClearOverride(playerID string) bool {
	p := g.Player(playerID)
	if p == nil || p.Current.ManualScoreOverride == nil {
		return false
	}
	p.Current.ManualScoreOverride = nil
	return true
}

// ResetRound throws away the current round without scoring it.
func (g *Game) ResetRound() bool {
	if !g.RoundInProgress() {
		return false
	}
	for _, p := range g.Players {
		p.Current = round.PlayerRound{State: round.InRound}
	}
	return true
}

// FinalizeRound scores every player's current round, appends the frozen
// results to the history, adds the scores to the totals and deals everyone
// a fresh empty round. Players still in the round are banked.
func (g *Game) FinalizeRound() round.Round {
	r := round.Round{
		RoundNumber: g.CurrentRoundNumber(),
		Results:     make([]round.Result, 0, len(g.Players)),
	}
	for _, p := range g.Players {
		cur := p.Current.Clone()
		state := cur.State
		if state == round.InRound {
			state = round.Banked
		}
		score := rule.Score(cur.Hand, state, cur.ManualScoreOverride)
		auto := rule.Score(cur.Hand, state, nil)
		hand := cur.Hand

		r.Results = append(r.Results, round.Result{
			PlayerID:            p.ID,
			PlayerName:          p.Name,
			RoundScore:          score,
			State:               &state,
			ManualScoreOverride: cur.ManualScoreOverride,
			HandSnapshot:        &hand,
			AutoScore:           &auto,
		})

		p.TotalScore += score
		p.Current = round.PlayerRound{State: round.InRound}
	}
	g.History = append(g.History, r)
	return r.Clone()
}

// SetTargetScore changes the target, clamped to the allowed range.
func (g *Game) SetTargetScore(target int) bool {
	target = ClampTargetScore(target)
	if target == g.TargetScore {
		return false
	}
	g.TargetScore = target
	return true
}

// SetDeckProfile swaps the deck composition. Cards already on the table stay;
// the remaining counts simply floor at zero.
func (g *Game) SetDeckProfile(profile card.DeckProfile) bool {
	if profile.Validate() != nil || profile.Equal(g.DeckProfile) {
		return false
	}
	g.DeckProfile = profile.Clone()
	return true
}
