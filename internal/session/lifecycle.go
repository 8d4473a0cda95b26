package session

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/flip-seven/internal/game"
	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/storage"
)

func (c *Controller) replace(g *game.Game) {
	c.game = g
	c.undo.Clear()
	c.redo.Clear()
}

// NewGame starts a game for the given names, dropping any game in progress
// and all undo history.
func (c *Controller) NewGame(names []string, target int, profile card.DeckProfile) bool {
	g, ok := game.New(names, target, profile)
	if !ok {
		c.log.WithField("players", len(names)).Warn("new game rejected")
		return false
	}
	c.replace(g)
	c.log.WithFields(logrus.Fields{
		"players": len(g.Players),
		"target":  g.TargetScore,
	}).Info("new game")
	c.persist()
	return true
}

// PlayAgain starts a rematch with the same table, target and deck.
func (c *Controller) PlayAgain() bool {
	if c.game == nil {
		return false
	}
	c.replace(c.game.Rematch())
	c.log.Info("rematch")
	c.persist()
	return true
}

// EndGame hands the game to every recorder, deletes the saved copy and
// unloads it. Recorder failures are logged. The final game is returned.
func (c *Controller) EndGame(ctx context.Context) (*game.Game, bool) {
	if c.game == nil {
		return nil, false
	}
	final := c.game
	if len(final.History) > 0 {
		for _, r := range c.recorders {
			if err := r.RecordFinishedGame(ctx, final.Clone()); err != nil {
				c.log.WithError(err).Warn("failed to record finished game")
			}
		}
	}
	c.replace(nil)
	c.log.WithField("rounds", len(final.History)).Info("game ended")
	c.persist()
	return final, true
}

// Restore loads the saved game. A missing or unreadable save leaves the
// controller without a game.
func (c *Controller) Restore(ctx context.Context, loader storage.GameLoader) bool {
	g, err := loader.LoadGame(ctx)
	if err != nil {
		c.log.WithError(err).Warn("discarding saved game")
		g = nil
	}
	if g == nil {
		c.replace(nil)
		return false
	}
	c.replace(g)
	c.log.WithFields(logrus.Fields{
		"players": len(g.Players),
		"round":   g.CurrentRoundNumber(),
	}).Info("restored saved game")
	return true
}
