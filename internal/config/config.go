package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/palemoky/flip-seven/internal/apperrors"
	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/history"
)

// Storage backends
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

const (
	defaultBackend      = BackendFile
	defaultStorageDir   = ".flip-seven"
	defaultSaveTimeout  = 500
	defaultRedisAddr    = "localhost:6379"
	defaultTargetScore  = game.DefaultTargetScore
	defaultHistoryLimit = history.DefaultLimit
	defaultLogLevel     = "info"
	defaultSoundDir     = "assets/sounds"
)

// Config is the scorekeeper configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	Archive ArchiveConfig `yaml:"archive"`
	Game    GameConfig    `yaml:"game"`
	Log     LogConfig     `yaml:"log"`
	Sound   SoundConfig   `yaml:"sound"`
}

// StorageConfig selects where the live game and the defaults are saved.
type StorageConfig struct {
	Backend     string `yaml:"backend" env:"FLIP7_STORAGE_BACKEND"`
	Dir         string `yaml:"dir" env:"FLIP7_STORAGE_DIR"`
	SaveTimeout int    `yaml:"save_timeout" env:"FLIP7_SAVE_TIMEOUT"` // milliseconds
}

// RedisConfig Redis connection, used by the redis backend and the leaderboard.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"FLIP7_REDIS_ADDR"`
	Password string `yaml:"password" env:"FLIP7_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"FLIP7_REDIS_DB"`
	// Leaderboard records finished games in Redis even when the live game is
	// stored elsewhere.
	Leaderboard bool `yaml:"leaderboard" env:"FLIP7_LEADERBOARD"`
}

// ArchiveConfig Postgres archive of finished games. Empty URL disables it.
type ArchiveConfig struct {
	PostgresURL string `yaml:"postgres_url" env:"FLIP7_POSTGRES_URL"`
}

// GameConfig defaults used when a new game starts.
type GameConfig struct {
	DefaultTarget  int      `yaml:"default_target" env:"FLIP7_DEFAULT_TARGET"`
	HistoryLimit   int      `yaml:"history_limit" env:"FLIP7_HISTORY_LIMIT"`
	DefaultPlayers []string `yaml:"default_players" env:"FLIP7_DEFAULT_PLAYERS"` // ';' separated in env
	DeckFile       string   `yaml:"deck_file" env:"FLIP7_DECK_FILE"`
}

// LogConfig logging options.
type LogConfig struct {
	Level string `yaml:"level" env:"FLIP7_LOG_LEVEL"`
	Dir   string `yaml:"dir" env:"FLIP7_LOG_DIR"`
}

// SoundConfig audio cue options.
type SoundConfig struct {
	Muted bool   `yaml:"muted" env:"FLIP7_SOUND_MUTED"`
	Dir   string `yaml:"dir" env:"FLIP7_SOUND_DIR"`
}

// SaveTimeoutDuration returns the per-save timeout
func (c *StorageConfig) SaveTimeoutDuration() time.Duration {
	return time.Duration(c.SaveTimeout) * time.Millisecond
}

// Load reads a YAML config file, then applies a .env file and environment
// overrides, then fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from a .env file in the working directory and
// from FLIP7_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}
	if err := envdecode.Decode(c); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("failed to decode environment: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultBackend
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = homeDir(defaultStorageDir)
	}
	if c.Storage.SaveTimeout == 0 {
		c.Storage.SaveTimeout = defaultSaveTimeout
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Game.DefaultTarget == 0 {
		c.Game.DefaultTarget = defaultTargetScore
	}
	c.Game.DefaultTarget = game.ClampTargetScore(c.Game.DefaultTarget)
	if c.Game.HistoryLimit <= 0 {
		c.Game.HistoryLimit = defaultHistoryLimit
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Sound.Dir == "" {
		c.Sound.Dir = defaultSoundDir
	}
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return apperrors.Wrap(apperrors.ErrUnknownBackend, fmt.Errorf("%q", c.Storage.Backend))
	}
	if n := len(c.Game.DefaultPlayers); n != 0 && (n < game.MinPlayers || n > game.MaxPlayers) {
		return apperrors.Wrap(apperrors.ErrInvalidConfig,
			fmt.Errorf("default_players must list %d to %d names, got %d", game.MinPlayers, game.MaxPlayers, n))
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadDeckProfile reads a deck profile from a YAML file.
func LoadDeckProfile(path string) (card.DeckProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return card.DeckProfile{}, err
	}

	var profile card.DeckProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return card.DeckProfile{}, apperrors.Wrap(apperrors.ErrInvalidConfig, err)
	}
	if err := profile.Validate(); err != nil {
		return card.DeckProfile{}, apperrors.Wrap(apperrors.ErrInvalidConfig, err)
	}
	return profile, nil
}

func homeDir(name string) string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, name)
}
