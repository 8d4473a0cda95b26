package card

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Hand is the set of cards one player has drawn in the current round.
type Hand struct {
	Numbers     NumberSet   `json:"numbers"`
	Modifiers   map[int]int `json:"modifiers,omitempty"`
	Multipliers int         `json:"multipliers,omitempty"`
}

// AddNumber draws n and reports whether n was already held.
// A duplicate leaves the hand untouched; driving the bust is up to the caller.
func (h *Hand) AddNumber(n int) (duplicate bool) {
	return h.Numbers.Add(n)
}

// RemoveNumber takes n back out of the hand, if held.
func (h *Hand) RemoveNumber(n int) {
	h.Numbers.Remove(n)
}

// HasNumber reports whether n is held.
func (h Hand) HasNumber(n int) bool {
	return h.Numbers.Has(n)
}

// AddModifier adds one copy of the +v modifier.
func (h *Hand) AddModifier(v int) {
	if h.Modifiers == nil {
		h.Modifiers = make(map[int]int)
	}
	h.Modifiers[v]++
}

// RemoveModifier drops one copy of the +v modifier. Entries that reach zero
// are pruned; removing an absent modifier does nothing.
func (h *Hand) RemoveModifier(v int) {
	count, ok := h.Modifiers[v]
	if !ok {
		return
	}
	if count <= 1 {
		delete(h.Modifiers, v)
		return
	}
	h.Modifiers[v] = count - 1
}

// ModifierCount returns how many +v cards are held.
func (h Hand) ModifierCount(v int) int {
	return h.Modifiers[v]
}

// AddMultiplier adds a x2 card.
func (h *Hand) AddMultiplier() {
	h.Multipliers++
}

// RemoveMultiplier drops a x2 card, floored at zero.
func (h *Hand) RemoveMultiplier() {
	if h.Multipliers > 0 {
		h.Multipliers--
	}
}

// NumberSum is the sum of held number faces.
func (h Hand) NumberSum() int {
	return h.Numbers.Sum()
}

// ModifierSum is the sum of value times count over held modifiers.
func (h Hand) ModifierSum() int {
	sum := 0
	for v, count := range h.Modifiers {
		sum += v * count
	}
	return sum
}

// HasBonus reports whether the hand holds at least seven distinct numbers.
func (h Hand) HasBonus() bool {
	return h.Numbers.Len() >= FlipSevenSize
}

// IsEmpty reports whether no card at all has been drawn.
func (h Hand) IsEmpty() bool {
	return h.Numbers == 0 && len(h.Modifiers) == 0 && h.Multipliers == 0
}

// CardCount returns the number of cards on the table for this hand.
func (h Hand) CardCount() int {
	total := h.Numbers.Len() + h.Multipliers
	for _, count := range h.Modifiers {
		total += count
	}
	return total
}

// Clone returns a deep copy of the hand.
func (h Hand) Clone() Hand {
	return Hand{
		Numbers:     h.Numbers,
		Modifiers:   maps.Clone(h.Modifiers),
		Multipliers: h.Multipliers,
	}
}

// Equal compares two hands by content.
func (h Hand) Equal(o Hand) bool {
	return h.Numbers == o.Numbers && h.Multipliers == o.Multipliers && sameCounts(h.Modifiers, o.Modifiers)
}

// String renders the hand as e.g. "1 4 7 | +2 +2 | x2".
func (h Hand) String() string {
	if h.IsEmpty() {
		return "-"
	}
	var parts []string
	if h.Numbers != 0 {
		nums := make([]string, 0, h.Numbers.Len())
		for _, n := range h.Numbers.Values() {
			nums = append(nums, strconv.Itoa(n))
		}
		parts = append(parts, strings.Join(nums, " "))
	}
	if len(h.Modifiers) > 0 {
		values := slices.Sorted(maps.Keys(h.Modifiers))
		var mods []string
		for _, v := range values {
			for range h.Modifiers[v] {
				mods = append(mods, ModifierLabel(v))
			}
		}
		parts = append(parts, strings.Join(mods, " "))
	}
	if h.Multipliers > 0 {
		parts = append(parts, strings.TrimSpace(strings.Repeat("x2 ", h.Multipliers)))
	}
	return strings.Join(parts, " | ")
}

// Validate rejects hands the mutators can never produce: unknown or
// non-positive modifier entries and a multiplier count outside
// 0..MaxMultipliers. Number faces are checked when the set is decoded.
func (h Hand) Validate() error {
	for v, count := range h.Modifiers {
		if !ValidModifier(v) {
			return fmt.Errorf("unknown modifier +%d", v)
		}
		if count < 1 {
			return fmt.Errorf("modifier +%d has count %d", v, count)
		}
	}
	if h.Multipliers < 0 || h.Multipliers > MaxMultipliers {
		return fmt.Errorf("multiplier count %d", h.Multipliers)
	}
	return nil
}
