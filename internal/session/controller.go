// Package session owns the live game and applies every user action to it,
// keeping undo and redo history and saving after each change.
package session

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/deck"
	"github.com/palemoky/flip-seven/internal/game/history"
	"github.com/palemoky/flip-seven/internal/game/round"
	"github.com/palemoky/flip-seven/internal/logger"
	"github.com/palemoky/flip-seven/internal/storage"
)

const defaultSaveTimeout = 500 * time.Millisecond

// Recorder receives every game that is ended with at least one round played.
type Recorder interface {
	RecordFinishedGame(ctx context.Context, g *game.Game) error
}

// Options configures a Controller. Every field is optional.
type Options struct {
	Saver        storage.GameSaver
	Recorders    []Recorder
	Logger       logrus.FieldLogger
	HistoryLimit int
	SaveTimeout  time.Duration
}

// Controller is the single writer of the live game. It is not safe for
// concurrent use; the UI loop drives it.
type Controller struct {
	game *game.Game
	undo *history.Stack[*game.Game]
	redo *history.Stack[*game.Game]

	saver       storage.GameSaver
	recorders   []Recorder
	log         logrus.FieldLogger
	saveTimeout time.Duration
}

// NewController creates a controller with no game loaded.
func NewController(opts Options) *Controller {
	c := &Controller{
		undo:        history.NewStack[*game.Game](opts.HistoryLimit),
		redo:        history.NewStack[*game.Game](opts.HistoryLimit),
		saver:       opts.Saver,
		recorders:   opts.Recorders,
		log:         opts.Logger,
		saveTimeout: opts.SaveTimeout,
	}
	if c.log == nil {
		c.log = logger.L()
	}
	if c.saveTimeout <= 0 {
		c.saveTimeout = defaultSaveTimeout
	}
	return c
}

// mutate runs apply against the live game. On success the previous state goes
// on the undo stack, redo is cleared and the game is saved. apply must leave
// the game untouched when it reports failure.
func (c *Controller) mutate(op string, fields logrus.Fields, apply func(g *game.Game) bool) bool {
	if c.game == nil {
		return false
	}
	before := c.game.Clone()
	if !apply(c.game) {
		c.log.WithFields(fields).WithField("op", op).Debug("action rejected")
		return false
	}
	c.undo.Push(before)
	c.redo.Clear()
	c.log.WithFields(fields).WithField("op", op).Debug("action applied")
	c.persist()
	return true
}

// persist saves the live game. Failures are logged and otherwise ignored; the
// in-memory state stays authoritative.
func (c *Controller) persist() {
	if c.saver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.saveTimeout)
	defer cancel()

	var err error
	if c.game == nil {
		err = c.saver.DeleteGame(ctx)
	} else {
		err = c.saver.SaveGame(ctx, c.game)
	}
	if err != nil {
		c.log.WithError(err).Warn("failed to save game")
	}
}

func playerFields(playerID string) logrus.Fields {
	return logrus.Fields{"player_id": playerID}
}

// AddCardToPlayer draws number n for a player. DrawDuplicate leaves the game
// unchanged and nothing is recorded; the caller decides whether to bust.
func (c *Controller) AddCardToPlayer(playerID string, n int) game.DrawResult {
	if c.game == nil {
		return game.DrawRejected
	}
	result := game.DrawRejected
	fields := logrus.Fields{"player_id": playerID, "number": n}
	c.mutate("add_card", fields, func(g *game.Game) bool {
		result = g.DrawNumber(playerID, n)
		return result == game.DrawAdded
	})
	return result
}

// RemoveCardFromPlayer returns number n from a player's hand.
func (c *Controller) RemoveCardFromPlayer(playerID string, n int) bool {
	return c.mutate("remove_card", logrus.Fields{"player_id": playerID, "number": n}, func(g *game.Game) bool {
		return g.DiscardNumber(playerID, n)
	})
}

// AddModifierToPlayer gives a player a +v card.
func (c *Controller) AddModifierToPlayer(playerID string, v int) bool {
	return c.mutate("add_modifier", logrus.Fields{"player_id": playerID, "modifier": v}, func(g *game.Game) bool {
		return g.AddModifier(playerID, v)
	})
}

// RemoveModifierFromPlayer takes a +v card back.
func (c *Controller) RemoveModifierFromPlayer(playerID string, v int) bool {
	return c.mutate("remove_modifier", logrus.Fields{"player_id": playerID, "modifier": v}, func(g *game.Game) bool {
		return g.RemoveModifier(playerID, v)
	})
}

// AddMultiplierToPlayer gives a player a x2 card.
func (c *Controller) AddMultiplierToPlayer(playerID string) bool {
	return c.mutate("add_multiplier", playerFields(playerID), func(g *game.Game) bool {
		return g.AddMultiplier(playerID)
	})
}

// RemoveMultiplierFromPlayer takes a x2 card back.
func (c *Controller) RemoveMultiplierFromPlayer(playerID string) bool {
	return c.mutate("remove_multiplier", playerFields(playerID), func(g *game.Game) bool {
		return g.RemoveMultiplier(playerID)
	})
}

// SetPlayerState banks, busts, freezes or reopens a player's round.
func (c *Controller) SetPlayerState(playerID string, state round.State) bool {
	return c.mutate("set_state", logrus.Fields{"player_id": playerID, "state": state.String()}, func(g *game.Game) bool {
		return g.SetState(playerID, state)
	})
}

// BustPlayer commits a bust, typically after a duplicate draw.
func (c *Controller) BustPlayer(playerID string) bool {
	return c.SetPlayerState(playerID, round.Busted)
}

// StartNewRound discards the round in progress without scoring it.
func (c *Controller) StartNewRound() bool {
	return c.mutate("start_new_round", nil, func(g *game.Game) bool {
		return g.ResetRound()
	})
}

// EndRound scores the round, appends it to the history and deals a fresh
// round. The finished round is returned.
func (c *Controller) EndRound() (round.Round, bool) {
	var finished round.Round
	ok := c.mutate("end_round", nil, func(g *game.Game) bool {
		finished = g.FinalizeRound()
		return true
	})
	if ok {
		c.log.WithFields(logrus.Fields{
			"round":      finished.RoundNumber,
			"has_winner": c.game.HasWinner(),
		}).Info("round finished")
	}
	return finished, ok
}

// UpdateDeckProfile swaps the deck composition.
func (c *Controller) UpdateDeckProfile(profile card.DeckProfile) bool {
	return c.mutate("update_deck", logrus.Fields{"cards": profile.TotalCards()}, func(g *game.Game) bool {
		return g.SetDeckProfile(profile)
	})
}

// UpdateTargetScore changes the winning score, clamped to the allowed range.
func (c *Controller) UpdateTargetScore(target int) bool {
	return c.mutate("update_target", logrus.Fields{"target": target}, func(g *game.Game) bool {
		return g.SetTargetScore(target)
	})
}

// ReorderPlayers reseats the table in the given id order.
func (c *Controller) ReorderPlayers(ids []string) bool {
	return c.mutate("reorder_players", nil, func(g *game.Game) bool {
		return g.Reorder(ids)
	})
}

// UpdatePlayerNames renames players by id.
func (c *Controller) UpdatePlayerNames(names map[string]string) bool {
	return c.mutate("rename_players", logrus.Fields{"count": len(names)}, func(g *game.Game) bool {
		return g.Rename(names)
	})
}

// AddPlayer seats a new player and returns their id.
func (c *Controller) AddPlayer(name string) (string, bool) {
	var id string
	ok := c.mutate("add_player", logrus.Fields{"name": name}, func(g *game.Game) bool {
		p, ok := g.AddPlayer(name)
		if ok {
			id = p.ID
		}
		return ok
	})
	return id, ok
}

// RemovePlayer takes a player off the table.
func (c *Controller) RemovePlayer(playerID string) bool {
	return c.mutate("remove_player", playerFields(playerID), func(g *game.Game) bool {
		return g.RemovePlayer(playerID)
	})
}

// SetManualScoreOverride pins a player's round score.
func (c *Controller) SetManualScoreOverride(playerID string, score int) bool {
	return c.mutate("set_override", logrus.Fields{"player_id": playerID, "score": score}, func(g *game.Game) bool {
		return g.SetOverride(playerID, score)
	})
}

// ClearManualScoreOverride returns a player to the computed round score.
func (c *Controller) ClearManualScoreOverride(playerID string) bool {
	return c.mutate("clear_override", playerFields(playerID), func(g *game.Game) bool {
		return g.ClearOverride(playerID)
	})
}

// Undo restores the state before the last action.
func (c *Controller) Undo() bool {
	prev, ok := c.undo.Pop()
	if !ok {
		return false
	}
	c.redo.Push(c.game)
	c.game = prev
	c.log.WithField("undo_left", c.undo.Len()).Debug("undo")
	c.persist()
	return true
}

// Redo reapplies the last undone action.
func (c *Controller) Redo() bool {
	next, ok := c.redo.Pop()
	if !ok {
		return false
	}
	c.undo.Push(c.game)
	c.game = next
	c.log.WithField("redo_left", c.redo.Len()).Debug("redo")
	c.persist()
	return true
}

// CanUndo reports whether there is anything to undo.
func (c *Controller) CanUndo() bool { return c.undo.Len() > 0 }

// CanRedo reports whether there is anything to redo.
func (c *Controller) CanRedo() bool { return c.redo.Len() > 0 }

// Game returns a copy of the live game, nil when none is loaded.
func (c *Controller) Game() *game.Game {
	if c.game == nil {
		return nil
	}
	return c.game.Clone()
}

// HasGame reports whether a game is loaded.
func (c *Controller) HasGame() bool { return c.game != nil }

// Inventory reports the cards left in the deck this round.
func (c *Controller) Inventory() *deck.Inventory {
	if c.game == nil {
		return nil
	}
	return c.game.Inventory()
}

// ScoreFor is a player's round score if the round ended now.
func (c *Controller) ScoreFor(playerID string) (int, bool) {
	if c.game == nil {
		return 0, false
	}
	return c.game.RoundScore(playerID)
}

// RoundNumber is the round being played, 0 without a game.
func (c *Controller) RoundNumber() int {
	if c.game == nil {
		return 0
	}
	return c.game.CurrentRoundNumber()
}
