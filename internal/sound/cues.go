package sound

import "github.com/palemoky/flip-seven/internal/game/round"

// Cue names a sound. The file assets/sounds/<cue>.mp3 (or .wav) is played.
type Cue string

const (
	CueBust      Cue = "bust"
	CueFlipSeven Cue = "flipseven"
	CueBank      Cue = "bank"
	CueFreeze    Cue = "freeze"
	CueRoundEnd  Cue = "round"
	CueWin       Cue = "win"
)

// CueForState is the sound for a player moving to state s, empty when the
// change is silent.
func CueForState(s round.State) Cue {
	switch s {
	case round.Busted:
		return CueBust
	case round.Banked:
		return CueBank
	case round.Frozen:
		return CueFreeze
	default:
		return ""
	}
}
