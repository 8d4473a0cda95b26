// Package deck tracks which cards of the shared deck are still available in
// the round being played.
package deck

import "github.com/palemoky/flip-seven/internal/game/card"

// Inventory counts the cards held across all hands of the current round
// against the deck profile.
type Inventory struct {
	profile       card.DeckProfile
	usedNumbers   map[int]int
	usedModifiers map[int]int
	usedMultiply  int
}

// NewInventory builds an inventory from the deck profile and every hand of
// the current round.
func NewInventory(profile card.DeckProfile, hands ...card.Hand) *Inventory {
	inv := &Inventory{
		profile:       profile,
		usedNumbers:   make(map[int]int),
		usedModifiers: make(map[int]int),
	}
	for _, h := range hands {
		inv.Deduct(h)
	}
	return inv
}

// Deduct accounts for the cards of one more hand.
func (inv *Inventory) Deduct(h card.Hand) {
	for _, n := range h.Numbers.Values() {
		inv.usedNumbers[n]++
	}
	for v, count := range h.Modifiers {
		inv.usedModifiers[v] += count
	}
	inv.usedMultiply += h.Multipliers
}

// Reset forgets every hand, as at the start of a round.
func (inv *Inventory) Reset() {
	clear(inv.usedNumbers)
	clear(inv.usedModifiers)
	inv.usedMultiply = 0
}

// RemainingNumber is how many copies of number n are still in the deck.
func (inv *Inventory) RemainingNumber(n int) int {
	return max(0, inv.profile.NumberCards[n]-inv.usedNumbers[n])
}

// RemainingModifier is how many +v cards are still in the deck.
func (inv *Inventory) RemainingModifier(v int) int {
	return max(0, inv.profile.Modifiers[v]-inv.usedModifiers[v])
}

// RemainingMultipliers is how many x2 cards are still in the deck.
func (inv *Inventory) RemainingMultipliers() int {
	return max(0, inv.profile.Multipliers-inv.usedMultiply)
}

// UsedNumber is how many hands hold number n.
func (inv *Inventory) UsedNumber(n int) int {
	return inv.usedNumbers[n]
}

// UsedModifier is how many +v cards are held across hands.
func (inv *Inventory) UsedModifier(v int) int {
	return inv.usedModifiers[v]
}

// UsedMultipliers is how many x2 cards are held across hands.
func (inv *Inventory) UsedMultipliers() int {
	return inv.usedMultiply
}

// RemainingTotal counts every scoring card still in the deck.
func (inv *Inventory) RemainingTotal() int {
	total := inv.RemainingMultipliers()
	for n := range inv.profile.NumberCards {
		total += inv.RemainingNumber(n)
	}
	for v := range inv.profile.Modifiers {
		total += inv.RemainingModifier(v)
	}
	return total
}

// CanAddNumber reports whether a player holding hand may draw n. A number
// already in the hand is never an add.
func (inv *Inventory) CanAddNumber(n int, hand card.Hand) bool {
	if !card.ValidNumber(n) || hand.HasNumber(n) {
		return false
	}
	return inv.RemainingNumber(n) > 0
}

// CanAddModifier reports whether a +v card is left.
func (inv *Inventory) CanAddModifier(v int) bool {
	return card.ValidModifier(v) && inv.RemainingModifier(v) > 0
}

// CanAddMultiplier reports whether a x2 card is left.
func (inv *Inventory) CanAddMultiplier() bool {
	return inv.RemainingMultipliers() > 0
}
