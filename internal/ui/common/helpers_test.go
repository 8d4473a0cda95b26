package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/flip-seven/internal/game/round"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short name within limit", "Alice", 10, "Alice"},
		{"exact length", "HelloWorld", 10, "HelloWorld"},
		{"long name truncated", "VeryLongPlayerName", 10, "VeryLongP…"},
		{"accented name truncated", "Éléonore", 4, "Élé…"},
		{"empty name", "", 10, ""},
		{"single char limit", "Hello", 1, "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxLen))
		})
	}
}

func TestStateIcon(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BankedIcon, StateIcon(round.Banked))
	assert.Equal(t, BustedIcon, StateIcon(round.Busted))
	assert.Equal(t, FrozenIcon, StateIcon(round.Frozen))
	assert.Equal(t, InRoundIcon, StateIcon(round.InRound))
}

func TestCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 round", Count(1, "round"))
	assert.Equal(t, "0 busts", Count(0, "bust"))
	assert.Equal(t, "3 cards", Count(3, "card"))
}
