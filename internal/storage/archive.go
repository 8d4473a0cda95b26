package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/palemoky/flip-seven/internal/apperrors"
	"github.com/palemoky/flip-seven/internal/game"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS flip7_games (
	id           UUID PRIMARY KEY,
	finished_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	target_score INT NOT NULL,
	rounds       INT NOT NULL,
	document     JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS flip7_game_players (
	game_id     UUID NOT NULL REFERENCES flip7_games(id) ON DELETE CASCADE,
	seat        INT NOT NULL,
	player_id   TEXT NOT NULL,
	name        TEXT NOT NULL,
	total_score INT NOT NULL,
	did_win     BOOLEAN NOT NULL,
	PRIMARY KEY (game_id, seat)
);
CREATE TABLE IF NOT EXISTS flip7_round_results (
	game_id      UUID NOT NULL REFERENCES flip7_games(id) ON DELETE CASCADE,
	round_number INT NOT NULL,
	player_id    TEXT NOT NULL,
	round_score  INT NOT NULL,
	busted       BOOLEAN NOT NULL,
	flip_seven   BOOLEAN NOT NULL,
	PRIMARY KEY (game_id, round_number, player_id)
);
`

// ArchivedPlayer is one seat of an archived game.
type ArchivedPlayer struct {
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
	Won        bool   `json:"won"`
}

// ArchivedGame is a summary row of the archive.
type ArchivedGame struct {
	ID          uuid.UUID        `json:"id"`
	FinishedAt  time.Time        `json:"finished_at"`
	TargetScore int              `json:"target_score"`
	Rounds      int              `json:"rounds"`
	Players     []ArchivedPlayer `json:"players"`
}

// Archive appends finished games to Postgres.
type Archive struct {
	db *pgxpool.Pool
}

// OpenArchive connects to Postgres. An empty url means no archive.
func OpenArchive(ctx context.Context, url string) (*Archive, error) {
	if url == "" {
		return nil, apperrors.ErrArchiveDisabled
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return &Archive{db: pool}, nil
}

// Close releases the pool.
func (a *Archive) Close() {
	a.db.Close()
}

// EnsureSchema creates the archive tables when missing.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.Exec(ctx, archiveSchema); err != nil {
		return fmt.Errorf("create archive schema: %w", err)
	}
	return nil
}

// RecordFinishedGame stores the game document, its final standings and every
// round result in one transaction.
func (a *Archive) RecordFinishedGame(ctx context.Context, g *game.Game) error {
	if g == nil || len(g.History) == 0 {
		return nil
	}
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to encode game: %w", err)
	}
	winners := make(map[string]bool)
	for _, w := range g.Winners() {
		winners[w.ID] = true
	}
	gameID := uuid.New()

	err = pgx.BeginTxFunc(ctx, a.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		insertGame := `
			INSERT INTO flip7_games (id, target_score, rounds, document)
			VALUES ($1, $2, $3, $4)
		`
		if _, e := tx.Exec(ctx, insertGame, gameID, g.TargetScore, len(g.History), doc); e != nil {
			return e
		}

		insertPlayer := `
			INSERT INTO flip7_game_players (game_id, seat, player_id, name, total_score, did_win)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		for seat, p := range g.Players {
			if _, e := tx.Exec(ctx, insertPlayer, gameID, seat, p.ID, p.Name, p.TotalScore, winners[p.ID]); e != nil {
				return e
			}
		}

		insertResult := `
			INSERT INTO flip7_round_results (game_id, round_number, player_id, round_score, busted, flip_seven)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (game_id, round_number, player_id) DO NOTHING
		`
		for _, r := range g.History {
			for _, res := range r.Results {
				if _, e := tx.Exec(ctx, insertResult, gameID, r.RoundNumber, res.PlayerID,
					res.RoundScore, res.IsBusted(), res.HasFlipSeven()); e != nil {
					return e
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx archive game: %w", err)
	}
	return nil
}

// RecentGames lists the latest archived games, newest first.
func (a *Archive) RecentGames(ctx context.Context, limit int) ([]ArchivedGame, error) {
	q := `
		SELECT id, finished_at, target_score, rounds
		FROM flip7_games
		ORDER BY finished_at DESC
		LIMIT $1
	`
	rows, err := a.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []ArchivedGame
	for rows.Next() {
		var ag ArchivedGame
		if err := rows.Scan(&ag.ID, &ag.FinishedAt, &ag.TargetScore, &ag.Rounds); err != nil {
			return nil, err
		}
		games = append(games, ag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range games {
		players, err := a.players(ctx, games[i].ID)
		if err != nil {
			return nil, err
		}
		games[i].Players = players
	}
	return games, nil
}

func (a *Archive) players(ctx context.Context, gameID uuid.UUID) ([]ArchivedPlayer, error) {
	q := `
		SELECT name, total_score, did_win
		FROM flip7_game_players
		WHERE game_id = $1
		ORDER BY seat
	`
	rows, err := a.db.Query(ctx, q, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []ArchivedPlayer
	for rows.Next() {
		var p ArchivedPlayer
		if err := rows.Scan(&p.Name, &p.TotalScore, &p.Won); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
