// Package storage persists the live game and the new-game defaults, and
// records finished games for the leaderboard and the archive.
package storage

import (
	"context"

	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/game/card"
)

// Well-known document keys.
const (
	KeyCurrentGame   = "flip7:game:current"
	KeyDefaultRoster = "flip7:defaults:roster"
	KeyDefaultDeck   = "flip7:defaults:deck"

	keyPrefix = "flip7:"
)

// GameSaver is what the session needs to persist the live game.
type GameSaver interface {
	SaveGame(ctx context.Context, g *game.Game) error
	DeleteGame(ctx context.Context) error
}

// GameLoader restores the live game. A missing game is (nil, nil).
type GameLoader interface {
	LoadGame(ctx context.Context) (*game.Game, error)
}

// Store keeps the live game plus the roster and deck defaults.
// Every Load method returns (nil, nil) when nothing was saved.
type Store interface {
	GameSaver
	GameLoader
	LoadRoster(ctx context.Context) ([]string, error)
	SaveRoster(ctx context.Context, names []string) error
	LoadDeckProfile(ctx context.Context) (*card.DeckProfile, error)
	SaveDeckProfile(ctx context.Context, profile card.DeckProfile) error
	Close() error
}

// blobs is the raw key/value layer shared by the Store implementations.
type blobs interface {
	get(ctx context.Context, key string) ([]byte, error) // nil, nil when absent
	set(ctx context.Context, key string, data []byte) error
	del(ctx context.Context, key string) error
}

// docStore implements Store on top of a blobs backend.
type docStore struct {
	b blobs
}

func (s docStore) LoadGame(ctx context.Context) (*game.Game, error) {
	data, err := s.b.get(ctx, KeyCurrentGame)
	if err != nil || data == nil {
		return nil, err
	}
	return DecodeGame(data)
}

func (s docStore) SaveGame(ctx context.Context, g *game.Game) error {
	if g == nil {
		return nil
	}
	data, err := EncodeGame(g)
	if err != nil {
		return err
	}
	return s.b.set(ctx, KeyCurrentGame, data)
}

func (s docStore) DeleteGame(ctx context.Context) error {
	return s.b.del(ctx, KeyCurrentGame)
}

func (s docStore) LoadRoster(ctx context.Context) ([]string, error) {
	data, err := s.b.get(ctx, KeyDefaultRoster)
	if err != nil || data == nil {
		return nil, err
	}
	return DecodeRoster(data)
}

func (s docStore) SaveRoster(ctx context.Context, names []string) error {
	data, err := EncodeRoster(names)
	if err != nil {
		return err
	}
	return s.b.set(ctx, KeyDefaultRoster, data)
}

func (s docStore) LoadDeckProfile(ctx context.Context) (*card.DeckProfile, error) {
	data, err := s.b.get(ctx, KeyDefaultDeck)
	if err != nil || data == nil {
		return nil, err
	}
	profile, err := DecodeDeckProfile(data)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s docStore) SaveDeckProfile(ctx context.Context, profile card.DeckProfile) error {
	data, err := EncodeDeckProfile(profile)
	if err != nil {
		return err
	}
	return s.b.set(ctx, KeyDefaultDeck, data)
}
