package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/flip-seven/internal/apperrors"
	"github.com/palemoky/flip-seven/internal/game"
)

const (
	playerRecordKey = "flip7:player:"
	leaderboardKey  = "flip7:leaderboard:wins"
)

// PlayerRecord is a player's lifetime record across finished games.
type PlayerRecord struct {
	Name       string `json:"name"`
	Games      int    `json:"games"`
	Wins       int    `json:"wins"`
	BestTotal  int    `json:"best_total"`
	FlipSevens int    `json:"flip_sevens"`
	Busts      int    `json:"busts"`
	Rounds     int    `json:"rounds"`

	CurrentStreak int `json:"current_streak"` // positive for wins, negative for losses
	MaxWinStreak  int `json:"max_win_streak"`

	LastPlayedAt int64 `json:"last_played_at"`
	CreatedAt    int64 `json:"created_at"`
}

// WinRate is wins per game as a percentage.
func (r *PlayerRecord) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games) * 100
}

// LeaderboardEntry is one line of the leaderboard.
type LeaderboardEntry struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Wins    int     `json:"wins"`
	Games   int     `json:"games"`
	WinRate float64 `json:"win_rate"`
}

// Leaderboard keeps lifetime records in Redis. Players are matched across
// games by name, case and surrounding spaces ignored.
type Leaderboard struct {
	redis *redis.Client
	now   func() time.Time
}

// NewLeaderboard wraps a Redis client.
func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{redis: client, now: time.Now}
}

// RecordKey normalizes a player name into the record key suffix.
func RecordKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetPlayerRecord loads a record, nil when the player never finished a game.
func (lb *Leaderboard) GetPlayerRecord(ctx context.Context, name string) (*PlayerRecord, error) {
	data, err := lb.redis.Get(ctx, playerRecordKey+RecordKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rec PlayerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptSave, err)
	}
	return &rec, nil
}

// RecordFinishedGame folds a finished game into every player's record.
// Winners are the players tied at the top once the target was reached; a game
// ended early has no winners.
func (lb *Leaderboard) RecordFinishedGame(ctx context.Context, g *game.Game) error {
	if g == nil || len(g.History) == 0 {
		return nil
	}
	winners := make(map[string]bool)
	for _, w := range g.Winners() {
		winners[w.ID] = true
	}
	now := lb.now().Unix()

	// Seats whose names normalize to the same key share one record and
	// count as one game for it.
	var keys []string
	seats := make(map[string][]*game.Player)
	for _, p := range g.Players {
		key := RecordKey(p.Name)
		if _, ok := seats[key]; !ok {
			keys = append(keys, key)
		}
		seats[key] = append(seats[key], p)
	}

	records := make([]*PlayerRecord, 0, len(keys))
	for _, key := range keys {
		group := seats[key]
		rec, err := lb.GetPlayerRecord(ctx, group[0].Name)
		if err != nil {
			return err
		}
		if rec == nil {
			rec = &PlayerRecord{CreatedAt: now}
		}
		rec.Name = group[0].Name
		rec.Games++
		rec.LastPlayedAt = now

		won := false
		for _, p := range group {
			won = won || winners[p.ID]
			rec.BestTotal = max(rec.BestTotal, p.TotalScore)
			for _, r := range g.History {
				res, ok := r.ResultFor(p.ID)
				if !ok {
					continue
				}
				rec.Rounds++
				if res.IsBusted() {
					rec.Busts++
				}
				if res.HasFlipSeven() {
					rec.FlipSevens++
				}
			}
		}
		updateStreak(rec, won)
		records = append(records, rec)
	}

	_, err := lb.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, rec := range records {
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			key := RecordKey(rec.Name)
			pipe.Set(ctx, playerRecordKey+key, data, 0)
			pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(rec.Wins), Member: key})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

func updateStreak(rec *PlayerRecord, won bool) {
	if won {
		rec.Wins++
		rec.CurrentStreak = max(1, rec.CurrentStreak+1)
	} else {
		rec.CurrentStreak = min(-1, rec.CurrentStreak-1)
	}
	rec.MaxWinStreak = max(rec.MaxWinStreak, rec.CurrentStreak)
}

// Top returns the best players by wins, highest first.
func (lb *Leaderboard) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	results, err := lb.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for _, z := range results {
		key, _ := z.Member.(string)
		rec, err := lb.GetPlayerRecord(ctx, key)
		if err != nil || rec == nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:    len(entries) + 1,
			Name:    rec.Name,
			Wins:    rec.Wins,
			Games:   rec.Games,
			WinRate: rec.WinRate(),
		})
	}
	return entries, nil
}

// Rank is the 1-based position of a player, -1 when not on the board.
func (lb *Leaderboard) Rank(ctx context.Context, name string) (int64, error) {
	rank, err := lb.redis.ZRevRank(ctx, leaderboardKey, RecordKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil
}
