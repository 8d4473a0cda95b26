//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/game/card"
)

// MockStore is a storage.Store mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) LoadGame(ctx context.Context) (*game.Game, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*game.Game), args.Error(1)
}

func (m *MockStore) SaveGame(ctx context.Context, g *game.Game) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockStore) DeleteGame(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) LoadRoster(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) SaveRoster(ctx context.Context, names []string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}

func (m *MockStore) LoadDeckProfile(ctx context.Context) (*card.DeckProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.DeckProfile), args.Error(1)
}

func (m *MockStore) SaveDeckProfile(ctx context.Context, profile card.DeckProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRecorder records finished games.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordFinishedGame(ctx context.Context, g *game.Game) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}
