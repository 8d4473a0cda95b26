package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/flip-seven/internal/apperrors"
	"github.com/palemoky/flip-seven/internal/config"
)

// NewRedisClient builds a client from the redis config section.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Open builds the configured store. The redis backend is pinged up front so
// a dead server is reported at startup.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.Storage.Dir)
	case config.BackendRedis:
		rs := NewRedisStore(NewRedisClient(cfg.Redis))
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return rs, nil
	default:
		return nil, apperrors.Wrap(apperrors.ErrUnknownBackend, fmt.Errorf("%q", cfg.Storage.Backend))
	}
}
