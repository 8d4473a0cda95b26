// Package round holds the per-round state of a player and the frozen records
// of finished rounds.
package round

import (
	"fmt"

	"github.com/palemoky/flip-seven/internal/game/card"
)

// State is a player's standing within the current round.
type State int

const (
	InRound State = iota
	Banked
	Busted
	Frozen
)

var stateNames = map[State]string{
	InRound: "in_round",
	Banked:  "banked",
	Busted:  "busted",
	Frozen:  "frozen",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// Editable reports whether the hand may still change. Only InRound is editable.
func (s State) Editable() bool {
	return s == InRound
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown round state %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	st, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseState maps a state name back to its value.
func ParseState(name string) (State, error) {
	for st, n := range stateNames {
		if n == name {
			return st, nil
		}
	}
	return InRound, fmt.Errorf("unknown round state %q", name)
}

// PlayerRound is what a player has going in the round being played.
type PlayerRound struct {
	Hand                card.Hand `json:"hand"`
	State               State     `json:"state"`
	ManualScoreOverride *int      `json:"manual_score_override,omitempty"`
}

// Clone returns a deep copy.
func (pr PlayerRound) Clone() PlayerRound {
	return PlayerRound{
		Hand:                pr.Hand.Clone(),
		State:               pr.State,
		ManualScoreOverride: cloneInt(pr.ManualScoreOverride),
	}
}

// Result is the frozen outcome of one player in a finished round.
//
// Records written by older versions may lack State, HandSnapshot, AutoScore
// and ManualScoreOverride. The accessors below derive what they can.
type Result struct {
	PlayerID            string     `json:"player_id"`
	PlayerName          string     `json:"player_name"`
	RoundScore          int        `json:"round_score"`
	State               *State     `json:"state,omitempty"`
	ManualScoreOverride *int       `json:"manual_score_override,omitempty"`
	HandSnapshot        *card.Hand `json:"hand_snapshot,omitempty"`
	AutoScore           *int       `json:"auto_score,omitempty"`
}

// IsBusted uses the recorded state, or a zero score when no state was recorded.
func (r Result) IsBusted() bool {
	if r.State != nil {
		return *r.State == Busted
	}
	return r.RoundScore == 0
}

// HasFlipSeven reports a scoring round with seven or more distinct numbers.
func (r Result) HasFlipSeven() bool {
	return r.HandSnapshot != nil && !r.IsBusted() && r.HandSnapshot.HasBonus()
}

// MultiplierCount is the number of x2 cards held, 0 without a snapshot.
func (r Result) MultiplierCount() int {
	if r.HandSnapshot == nil {
		return 0
	}
	return r.HandSnapshot.Multipliers
}

// ModifierPoints is the additive modifier total held, 0 without a snapshot.
func (r Result) ModifierPoints() int {
	if r.HandSnapshot == nil {
		return 0
	}
	return r.HandSnapshot.ModifierSum()
}

// Clone returns a deep copy.
func (r Result) Clone() Result {
	out := r
	if r.State != nil {
		st := *r.State
		out.State = &st
	}
	out.ManualScoreOverride = cloneInt(r.ManualScoreOverride)
	out.AutoScore = cloneInt(r.AutoScore)
	if r.HandSnapshot != nil {
		h := r.HandSnapshot.Clone()
		out.HandSnapshot = &h
	}
	return out
}

// Round is one finalized round. It is never modified after it is appended
// to the game history.
type Round struct {
	RoundNumber int      `json:"round_number"`
	Results     []Result `json:"results"`
}

// ResultFor finds the result of a player in this round.
func (r Round) ResultFor(playerID string) (Result, bool) {
	for _, res := range r.Results {
		if res.PlayerID == playerID {
			return res, true
		}
	}
	return Result{}, false
}

// Clone returns a deep copy.
func (r Round) Clone() Round {
	out := Round{RoundNumber: r.RoundNumber}
	if r.Results != nil {
		out.Results = make([]Result, len(r.Results))
		for i, res := range r.Results {
			out.Results[i] = res.Clone()
		}
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
