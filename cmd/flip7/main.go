package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/flip-seven/internal/apperrors"
	"github.com/palemoky/flip-seven/internal/config"
	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/logger"
	"github.com/palemoky/flip-seven/internal/session"
	"github.com/palemoky/flip-seven/internal/sound"
	"github.com/palemoky/flip-seven/internal/storage"
	"github.com/palemoky/flip-seven/internal/ui/model"
)

const startupTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	players := flag.String("players", "", "comma separated player names for a new game")
	fresh := flag.Bool("new", false, "ignore the saved game and start a new one")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}

	if err := initLogger(cfg.Log); err != nil {
		log.Printf("logging disabled: %v", err)
	}
	defer logger.Close()

	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			fmt.Fprintf(os.Stderr, "flip7 crashed, see %s\n", logger.GetLogPath())
			os.Exit(2)
		}
	}()

	if err := run(cfg, splitNames(*players), *fresh); err != nil {
		logger.LogError("exit: %v", err)
		log.Fatalf("flip7: %v", err)
	}
}

func initLogger(cfg config.LogConfig) error {
	if cfg.Dir != "" {
		return logger.InitDir(cfg.Dir, cfg.Level)
	}
	return logger.Init(cfg.Level)
}

func run(cfg *config.Config, names []string, fresh bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	defer func() { _ = store.Close() }()

	var recorders []session.Recorder
	var board model.LeaderboardSource
	if cfg.Redis.Leaderboard || cfg.Storage.Backend == config.BackendRedis {
		client := storage.NewRedisClient(cfg.Redis)
		defer func() { _ = client.Close() }()
		lb := storage.NewLeaderboard(client)
		recorders = append(recorders, lb)
		board = lb
	}

	archive, err := storage.OpenArchive(ctx, cfg.Archive.PostgresURL)
	switch {
	case errors.Is(err, apperrors.ErrArchiveDisabled):
	case err != nil:
		logger.LogError("archive unavailable: %v", err)
	default:
		defer archive.Close()
		if err := archive.EnsureSchema(ctx); err != nil {
			logger.LogError("archive schema: %v", err)
		} else {
			recorders = append(recorders, archive)
		}
	}

	ctrl := session.NewController(session.Options{
		Saver:        store,
		Recorders:    recorders,
		Logger:       logger.L(),
		HistoryLimit: cfg.Game.HistoryLimit,
		SaveTimeout:  cfg.Storage.SaveTimeoutDuration(),
	})

	restored := !fresh && len(names) == 0 && ctrl.Restore(ctx, store)
	if !restored {
		if err := startGame(ctx, ctrl, store, cfg, names); err != nil {
			return err
		}
	}

	sm := sound.NewManager(sound.Options{Muted: cfg.Sound.Muted, Dir: cfg.Sound.Dir})
	go func() {
		if err := sm.Init(); err != nil {
			logger.LogError("sound disabled: %v", err)
		}
	}()
	defer sm.Close()

	m := model.New(model.Options{Controller: ctrl, Sound: sm, Leaderboard: board})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

// startGame deals a new game from the first roster that is set: the command
// line, the config, then the last saved table.
func startGame(ctx context.Context, ctrl *session.Controller, store storage.Store, cfg *config.Config, names []string) error {
	if len(names) == 0 {
		names = cfg.Game.DefaultPlayers
	}
	if len(names) == 0 {
		saved, err := store.LoadRoster(ctx)
		if err != nil {
			logger.LogError("saved roster: %v", err)
		}
		names = saved
	}
	if len(names) == 0 {
		names = make([]string, game.MinPlayers)
	}

	profile := deckProfile(ctx, store, cfg.Game.DeckFile)
	if !ctrl.NewGame(names, cfg.Game.DefaultTarget, profile) {
		return fmt.Errorf("a game needs %d to %d players, got %d", game.MinPlayers, game.MaxPlayers, len(names))
	}

	if err := store.SaveRoster(ctx, ctrl.Game().Names()); err != nil {
		logger.LogError("save roster: %v", err)
	}
	if err := store.SaveDeckProfile(ctx, profile); err != nil {
		logger.LogError("save deck: %v", err)
	}
	return nil
}

func deckProfile(ctx context.Context, store storage.Store, path string) card.DeckProfile {
	if path != "" {
		profile, err := config.LoadDeckProfile(path)
		if err == nil {
			return profile
		}
		logger.LogError("deck file %s: %v", path, err)
	}
	saved, err := store.LoadDeckProfile(ctx)
	if err != nil {
		logger.LogError("saved deck: %v", err)
	}
	if saved != nil {
		return *saved
	}
	return card.DefaultDeckProfile()
}

func splitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
