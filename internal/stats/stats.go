package stats

import (
	"math"
	"slices"

	"github.com/palemoky/flip-seven/internal/game"
)

// Standing is one line of the final table. Players on equal totals share a
// rank and the next rank is skipped (1, 1, 3).
type Standing struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TotalScore int    `json:"total_score"`
}

// RoundHigh is the best single round of the game.
type RoundHigh struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Round      int    `json:"round"`
	Score      int    `json:"score"`
}

// GameStats summarizes a game.
type GameStats struct {
	RoundsPlayed    int           `json:"rounds_played"`
	Busts           int           `json:"busts"`
	FlipSevens      int           `json:"flip_sevens"`
	MultiplierCards int           `json:"multiplier_cards"`
	ModifierPoints  int           `json:"modifier_points"`
	HighestRound    *RoundHigh    `json:"highest_round,omitempty"`
	LeadChanges     int           `json:"lead_changes"`
	BiggestComeback *Comeback     `json:"biggest_comeback,omitempty"`
	Standings       []Standing    `json:"standings"`
	WinMargin       int           `json:"win_margin"`
	Players         []PlayerStats `json:"players"`
}

// PlayerStats summarizes one player's rounds.
type PlayerStats struct {
	PlayerID     string `json:"player_id"`
	PlayerName   string `json:"player_name"`
	Scores       []int  `json:"scores"`
	RoundsPlayed int    `json:"rounds_played"`

	Best   int      `json:"best"`
	Worst  int      `json:"worst"`
	Median float64  `json:"median"`
	Mean   float64  `json:"mean"`
	StdDev *float64 `json:"std_dev,omitempty"` // population; nil below two rounds

	LongestNoBustStreak      int `json:"longest_no_bust_streak"`
	LongestAboveMedianStreak int `json:"longest_above_median_streak"`

	Busts      int     `json:"busts"`
	BustRate   float64 `json:"bust_rate"`
	FlipSevens int     `json:"flip_sevens"`
}

// ForGame computes the game summary. Card tallies count only rounds that
// were not busted.
func ForGame(g *game.Game) GameStats {
	gs := GameStats{
		RoundsPlayed:    len(g.History),
		LeadChanges:     LeadChanges(g),
		BiggestComeback: BiggestComeback(g),
		Standings:       Standings(g),
		Players:         make([]PlayerStats, 0, len(g.Players)),
	}

	for _, r := range g.History {
		for _, res := range r.Results {
			if res.IsBusted() {
				gs.Busts++
			} else {
				gs.MultiplierCards += res.MultiplierCount()
				gs.ModifierPoints += res.ModifierPoints()
			}
			if res.HasFlipSeven() {
				gs.FlipSevens++
			}
			if gs.HighestRound == nil || res.RoundScore > gs.HighestRound.Score {
				gs.HighestRound = &RoundHigh{
					PlayerID:   res.PlayerID,
					PlayerName: res.PlayerName,
					Round:      r.RoundNumber,
					Score:      res.RoundScore,
				}
			}
		}
	}

	if len(gs.Standings) >= 2 {
		gs.WinMargin = gs.Standings[0].TotalScore - gs.Standings[1].TotalScore
	}
	for _, p := range g.Players {
		ps, _ := ForPlayer(g, p.ID)
		gs.Players = append(gs.Players, ps)
	}
	return gs
}

// Standings ranks the current players by total score.
func Standings(g *game.Game) []Standing {
	players := slices.Clone(g.Players)
	slices.SortStableFunc(players, func(a, b *game.Player) int {
		return b.TotalScore - a.TotalScore
	})

	out := make([]Standing, len(players))
	for i, p := range players {
		rank := i + 1
		if i > 0 && p.TotalScore == out[i-1].TotalScore {
			rank = out[i-1].Rank
		}
		out[i] = Standing{Rank: rank, PlayerID: p.ID, PlayerName: p.Name, TotalScore: p.TotalScore}
	}
	return out
}

// ForPlayer computes one player's summary. It reports false for ids not at
// the table. Rounds the player missed are skipped.
func ForPlayer(g *game.Game, playerID string) (PlayerStats, bool) {
	p := g.Player(playerID)
	if p == nil {
		return PlayerStats{}, false
	}
	ps := PlayerStats{PlayerID: p.ID, PlayerName: p.Name, Scores: []int{}}

	var busted []bool
	for _, r := range g.History {
		res, ok := r.ResultFor(p.ID)
		if !ok {
			continue
		}
		ps.Scores = append(ps.Scores, res.RoundScore)
		busted = append(busted, res.IsBusted())
		if res.IsBusted() {
			ps.Busts++
		}
		if res.HasFlipSeven() {
			ps.FlipSevens++
		}
	}

	ps.RoundsPlayed = len(ps.Scores)
	if ps.RoundsPlayed == 0 {
		return ps, true
	}

	ps.Best = slices.Max(ps.Scores)
	ps.Worst = slices.Min(ps.Scores)
	ps.Mean = mean(ps.Scores)
	ps.Median = median(ps.Scores)
	if ps.RoundsPlayed >= 2 {
		sd := stdDev(ps.Scores, ps.Mean)
		ps.StdDev = &sd
	}
	ps.BustRate = float64(ps.Busts) / float64(ps.RoundsPlayed)

	ps.LongestNoBustStreak = longestRun(len(busted), func(i int) bool { return !busted[i] })
	ps.LongestAboveMedianStreak = longestRun(len(ps.Scores), func(i int) bool {
		return float64(ps.Scores[i]) > ps.Median
	})
	return ps, true
}

func mean(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// median of an even count is the mean of the two middle values.
func median(values []int) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func stdDev(values []int, m float64) float64 {
	var sq float64
	for _, v := range values {
		d := float64(v) - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

func longestRun(n int, ok func(i int) bool) int {
	longest, run := 0, 0
	for i := 0; i < n; i++ {
		if ok(i) {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}
