// Package rule implements the Flip 7 scoring formula.
package rule

import (
	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/round"
)

// ScoreBreakdown shows how a hand's score is composed.
type ScoreBreakdown struct {
	NumberSum   int // sum of the number faces
	Multiplier  int // 2^x2 cards
	Multiplied  int // NumberSum * Multiplier
	ModifierSum int // additive modifiers, not multiplied
	Bonus       int // Flip 7 bonus
	Total       int
}

// Breakdown computes the score a hand would earn when banked.
func Breakdown(hand card.Hand) ScoreBreakdown {
	b := ScoreBreakdown{
		NumberSum:   hand.NumberSum(),
		Multiplier:  1 << max(hand.Multipliers, 0),
		ModifierSum: hand.ModifierSum(),
	}
	b.Multiplied = b.NumberSum * b.Multiplier
	if hand.HasBonus() {
		b.Bonus = card.FlipSevenBonus
	}
	b.Total = b.Multiplied + b.ModifierSum + b.Bonus
	return b
}

// HandScore is the hand-derived score, ignoring round state and overrides.
func HandScore(hand card.Hand) int {
	return Breakdown(hand).Total
}

// Score returns the round score of a hand.
//
// A bust always scores 0, even with a manual override. Otherwise an override
// wins over the hand, floored at 0.
func Score(hand card.Hand, state round.State, override *int) int {
	if state == round.Busted {
		return 0
	}
	if override != nil {
		return max(0, *override)
	}
	return HandScore(hand)
}
