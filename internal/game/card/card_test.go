package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDeckProfile(t *testing.T) {
	t.Parallel()

	p := DefaultDeckProfile()

	assert.Equal(t, 1, p.NumberCards[0], "one zero card")
	for n := 1; n <= MaxNumber; n++ {
		assert.Equal(t, n, p.NumberCards[n], "number %d should have %d copies", n, n)
	}
	for _, v := range ModifierValues {
		assert.Equal(t, 1, p.Modifiers[v], "modifier +%d", v)
	}
	assert.Equal(t, 1, p.Multipliers)

	// 79 numbers + 5 modifiers + 1 x2 + 9 actions
	assert.Equal(t, 94, p.TotalCards())
	assert.NoError(t, p.Validate())
}

func TestDeckProfile_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(p *DeckProfile)
	}{
		{"unknown number", func(p *DeckProfile) { p.NumberCards[13] = 1 }},
		{"negative number", func(p *DeckProfile) { p.NumberCards[5] = -1 }},
		{"unknown modifier", func(p *DeckProfile) { p.Modifiers[3] = 1 }},
		{"negative modifier", func(p *DeckProfile) { p.Modifiers[2] = -2 }},
		{"negative multiplier", func(p *DeckProfile) { p.Multipliers = -1 }},
		{"too many multipliers", func(p *DeckProfile) { p.Multipliers = MaxMultipliers + 1 }},
		{"negative action", func(p *DeckProfile) { p.ActionCards[ActionFreeze] = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := DefaultDeckProfile()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestDeckProfile_CloneAndEqual(t *testing.T) {
	t.Parallel()

	p := DefaultDeckProfile()
	c := p.Clone()
	assert.True(t, p.Equal(c))

	c.NumberCards[12] = 0
	assert.Equal(t, 12, p.NumberCards[12], "clone must not alias")
	assert.False(t, p.Equal(c))

	// zero and missing entries compare equal
	a := DeckProfile{NumberCards: map[int]int{1: 0}}
	b := DeckProfile{}
	assert.True(t, a.Equal(b))
}

func TestValidModifier(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidModifier(10))
	assert.False(t, ValidModifier(5))
	assert.Equal(t, "+6", ModifierLabel(6))
}
