package card

import (
	"encoding/json"
	"fmt"
	"maps"
	"math/bits"
	"slices"
	"strconv"
)

// Number card range. Each number can be held at most once per hand.
const (
	MinNumber = 0
	MaxNumber = 12
)

// Flip 7 bonus: drawing seven distinct numbers in one hand.
const (
	FlipSevenSize  = 7
	FlipSevenBonus = 15
)

// MaxMultipliers caps x2 cards in a deck, and so in a hand. A hand doubles
// once per card, so the cap keeps the factor far from int overflow.
const MaxMultipliers = 16

// ModifierValues lists the additive modifier cards (+2 .. +10).
var ModifierValues = []int{2, 4, 6, 8, 10}

// Action card names. They are tracked in the deck profile but never scored.
const (
	ActionFreeze       = "freeze"
	ActionFlipThree    = "flip_three"
	ActionSecondChance = "second_chance"
)

// ValidNumber reports whether n is a number card face.
func ValidNumber(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// ValidModifier reports whether v is one of the additive modifier faces.
func ValidModifier(v int) bool {
	return slices.Contains(ModifierValues, v)
}

// NumberSet is the set of number cards held in a hand.
type NumberSet uint16

// Add inserts n and reports whether it was already present.
// Numbers outside MinNumber..MaxNumber are ignored.
func (s *NumberSet) Add(n int) (duplicate bool) {
	if !ValidNumber(n) {
		return false
	}
	if s.Has(n) {
		return true
	}
	*s |= 1 << uint(n)
	return false
}

// Remove deletes n if present.
func (s *NumberSet) Remove(n int) {
	if !ValidNumber(n) {
		return
	}
	*s &^= 1 << uint(n)
}

// Has reports whether n is in the set.
func (s NumberSet) Has(n int) bool {
	return ValidNumber(n) && s&(1<<uint(n)) != 0
}

// Len returns the number of distinct numbers held.
func (s NumberSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Sum adds up the held number faces.
func (s NumberSet) Sum() int {
	sum := 0
	for n := MinNumber; n <= MaxNumber; n++ {
		if s.Has(n) {
			sum += n
		}
	}
	return sum
}

// Values returns the held numbers in ascending order.
func (s NumberSet) Values() []int {
	values := make([]int, 0, s.Len())
	for n := MinNumber; n <= MaxNumber; n++ {
		if s.Has(n) {
			values = append(values, n)
		}
	}
	return values
}

func (s NumberSet) String() string {
	return fmt.Sprint(s.Values())
}

// MarshalJSON encodes the set as a sorted array of numbers.
func (s NumberSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes a number array. Repeated numbers collapse into one.
func (s *NumberSet) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	var set NumberSet
	for _, n := range values {
		if !ValidNumber(n) {
			return fmt.Errorf("number card out of range: %d", n)
		}
		set.Add(n)
	}
	*s = set
	return nil
}

// DeckProfile describes how many copies of each card exist in the physical deck.
type DeckProfile struct {
	NumberCards map[int]int    `json:"number_cards" yaml:"number_cards"`
	Modifiers   map[int]int    `json:"additive_modifiers" yaml:"additive_modifiers"`
	Multipliers int            `json:"multipliers" yaml:"multipliers"`
	ActionCards map[string]int `json:"action_cards,omitempty" yaml:"action_cards,omitempty"`
}

// DefaultDeckProfile returns the retail deck: number n has n copies (0 has one),
// one of each modifier, one x2 and three of each action card.
func DefaultDeckProfile() DeckProfile {
	p := DeckProfile{
		NumberCards: make(map[int]int, MaxNumber+1),
		Modifiers:   make(map[int]int, len(ModifierValues)),
		Multipliers: 1,
		ActionCards: map[string]int{
			ActionFreeze:       3,
			ActionFlipThree:    3,
			ActionSecondChance: 3,
		},
	}
	p.NumberCards[0] = 1
	for n := 1; n <= MaxNumber; n++ {
		p.NumberCards[n] = n
	}
	for _, v := range ModifierValues {
		p.Modifiers[v] = 1
	}
	return p
}

// Validate rejects negative counts and card faces the game does not have.
func (p DeckProfile) Validate() error {
	for n, count := range p.NumberCards {
		if !ValidNumber(n) {
			return fmt.Errorf("unknown number card %d", n)
		}
		if count < 0 {
			return fmt.Errorf("negative count for number %d", n)
		}
	}
	for v, count := range p.Modifiers {
		if !ValidModifier(v) {
			return fmt.Errorf("unknown modifier +%d", v)
		}
		if count < 0 {
			return fmt.Errorf("negative count for modifier +%d", v)
		}
	}
	if p.Multipliers < 0 {
		return fmt.Errorf("negative multiplier count")
	}
	if p.Multipliers > MaxMultipliers {
		return fmt.Errorf("deck has %d x2 cards, at most %d allowed", p.Multipliers, MaxMultipliers)
	}
	for name, count := range p.ActionCards {
		if count < 0 {
			return fmt.Errorf("negative count for action %q", name)
		}
	}
	return nil
}

// TotalCards counts every card in the profile, actions included.
func (p DeckProfile) TotalCards() int {
	total := p.Multipliers
	for _, c := range p.NumberCards {
		total += c
	}
	for _, c := range p.Modifiers {
		total += c
	}
	for _, c := range p.ActionCards {
		total += c
	}
	return total
}

// Clone returns a deep copy of the profile.
func (p DeckProfile) Clone() DeckProfile {
	return DeckProfile{
		NumberCards: maps.Clone(p.NumberCards),
		Modifiers:   maps.Clone(p.Modifiers),
		Multipliers: p.Multipliers,
		ActionCards: maps.Clone(p.ActionCards),
	}
}

// Equal reports whether two profiles hold the same counts. Missing and zero
// entries are treated alike.
func (p DeckProfile) Equal(o DeckProfile) bool {
	return p.Multipliers == o.Multipliers &&
		sameCounts(p.NumberCards, o.NumberCards) &&
		sameCounts(p.Modifiers, o.Modifiers) &&
		sameCounts(p.ActionCards, o.ActionCards)
}

// ModifierLabel renders a modifier face, e.g. "+4".
func ModifierLabel(v int) string {
	return "+" + strconv.Itoa(v)
}

func sameCounts[K comparable](a, b map[K]int) bool {
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	for k, v := range b {
		if a[k] != v {
			return false
		}
	}
	return true
}
