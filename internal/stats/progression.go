// Package stats derives end-of-game and per-player reporting from the round
// history. Everything is recomputed on each call.
package stats

import (
	"slices"

	"github.com/palemoky/flip-seven/internal/game"
)

// Comeback is the largest deficit a player recovered from to finish ahead of
// everyone who led at that point.
type Comeback struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Round      int    `json:"round"`
	Deficit    int    `json:"deficit"`
}

// CumulativeScores maps each current player to their running total after
// every finished round. A round the player was absent from adds nothing.
func CumulativeScores(g *game.Game) map[string][]int {
	series := make(map[string][]int, len(g.Players))
	for _, p := range g.Players {
		totals := make([]int, 0, len(g.History))
		sum := 0
		for _, r := range g.History {
			if res, ok := r.ResultFor(p.ID); ok {
				sum += res.RoundScore
			}
			totals = append(totals, sum)
		}
		series[p.ID] = totals
	}
	return series
}

// leadersAt returns the ids tied for the lead after round index i, in seat
// order.
func leadersAt(g *game.Game, series map[string][]int, i int) []string {
	var leaders []string
	best := 0
	for _, p := range g.Players {
		score := series[p.ID][i]
		switch {
		case len(leaders) == 0 || score > best:
			best = score
			leaders = []string{p.ID}
		case score == best:
			leaders = append(leaders, p.ID)
		}
	}
	return leaders
}

// LeadChanges counts the rounds after which the set of leaders differs from
// the set after the round before. Ties count as a shared lead.
func LeadChanges(g *game.Game) int {
	if len(g.Players) == 0 {
		return 0
	}
	series := CumulativeScores(g)
	changes := 0
	var prev []string
	for i := range g.History {
		cur := leadersAt(g, series, i)
		if i > 0 && !slices.Equal(prev, cur) {
			changes++
		}
		prev = cur
	}
	return changes
}

// BiggestComeback finds the largest deficit behind the leaders that a player
// overcame to finish above all of them. Nil when nobody came back. On equal
// deficits the earliest round, then the earliest seat, wins.
func BiggestComeback(g *game.Game) *Comeback {
	if len(g.Players) == 0 || len(g.History) == 0 {
		return nil
	}
	series := CumulativeScores(g)
	last := len(g.History) - 1

	var best *Comeback
	for i, r := range g.History {
		leaders := leadersAt(g, series, i)
		top := series[leaders[0]][i]
		for _, p := range g.Players {
			deficit := top - series[p.ID][i]
			if deficit <= 0 || (best != nil && deficit <= best.Deficit) {
				continue
			}
			if !finishesAbove(series, last, p.ID, leaders) {
				continue
			}
			best = &Comeback{
				PlayerID:   p.ID,
				PlayerName: p.Name,
				Round:      r.RoundNumber,
				Deficit:    deficit,
			}
		}
	}
	return best
}

func finishesAbove(series map[string][]int, last int, id string, leaders []string) bool {
	final := series[id][last]
	for _, l := range leaders {
		if final <= series[l][last] {
			return false
		}
	}
	return true
}
