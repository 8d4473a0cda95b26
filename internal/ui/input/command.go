// Package input parses the command line typed under the score table.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/flip-seven/internal/game/card"
	"github.com/palemoky/flip-seven/internal/game/round"
)

// Kind is what a command does.
type Kind int

const (
	KindDraw Kind = iota + 1
	KindDiscard
	KindAddModifier
	KindRemoveModifier
	KindAddMultiplier
	KindRemoveMultiplier
	KindSetState
	KindSetOverride
	KindClearOverride
	KindEndRound
	KindResetRound
	KindUndo
	KindRedo
	KindStats
	KindLeaderboard
	KindTarget
	KindRename
	KindAddPlayer
	KindRemovePlayer
	KindMove
	KindPlayAgain
	KindFinish
	KindHelp
	KindQuit
)

// Command is one parsed line. Number carries the card face, score, target or
// seat; Text carries a name.
type Command struct {
	Kind   Kind
	Number int
	State  round.State
	Text   string
}

var (
	ErrEmpty          = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
)

var words = map[string]Command{
	"bank":   {Kind: KindSetState, State: round.Banked},
	"bust":   {Kind: KindSetState, State: round.Busted},
	"freeze": {Kind: KindSetState, State: round.Frozen},
	"unbank": {Kind: KindSetState, State: round.InRound},
	"unbust": {Kind: KindSetState, State: round.InRound},
	"thaw":   {Kind: KindSetState, State: round.InRound},
	"clear":  {Kind: KindClearOverride},
	"end":    {Kind: KindEndRound},
	"reset":  {Kind: KindResetRound},
	"undo":   {Kind: KindUndo},
	"u":      {Kind: KindUndo},
	"redo":   {Kind: KindRedo},
	"r":      {Kind: KindRedo},
	"stats":  {Kind: KindStats},
	"board":  {Kind: KindLeaderboard},
	"remove": {Kind: KindRemovePlayer},
	"again":  {Kind: KindPlayAgain},
	"finish": {Kind: KindFinish},
	"help":   {Kind: KindHelp},
	"?":      {Kind: KindHelp},
	"quit":   {Kind: KindQuit},
	"q":      {Kind: KindQuit},
	"x2":     {Kind: KindAddMultiplier},
	"-x2":    {Kind: KindRemoveMultiplier},
	"x":      {Kind: KindAddMultiplier},
	"-x":     {Kind: KindRemoveMultiplier},
}

// Parse reads one command line.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, ErrEmpty
	}
	head, rest, _ := strings.Cut(line, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)

	if cmd, ok := words[head]; ok && rest == "" {
		return cmd, nil
	}

	switch head {
	case "score":
		n, err := parseInt(rest)
		return Command{Kind: KindSetOverride, Number: n}, err
	case "target":
		n, err := parseInt(rest)
		return Command{Kind: KindTarget, Number: n}, err
	case "move":
		n, err := parseInt(rest)
		return Command{Kind: KindMove, Number: n}, err
	case "name":
		return textCommand(KindRename, rest)
	case "add":
		return textCommand(KindAddPlayer, rest)
	}

	if rest != "" {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, line)
	}
	return parseCard(head)
}

// parseCard handles "7", "-7", "+4" and "-+4".
func parseCard(s string) (Command, error) {
	remove := false
	if strings.HasPrefix(s, "-") {
		remove = true
		s = s[1:]
	}

	if v, ok := strings.CutPrefix(s, "+"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || !card.ValidModifier(n) {
			return Command{}, fmt.Errorf("%w: no %s card", ErrUnknownCommand, card.ModifierLabel(n))
		}
		if remove {
			return Command{Kind: KindRemoveModifier, Number: n}, nil
		}
		return Command{Kind: KindAddModifier, Number: n}, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, s)
	}
	if !card.ValidNumber(n) {
		return Command{}, fmt.Errorf("number cards run %d to %d", card.MinNumber, card.MaxNumber)
	}
	if remove {
		return Command{Kind: KindDiscard, Number: n}, nil
	}
	return Command{Kind: KindDraw, Number: n}, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", s)
	}
	return n, nil
}

func textCommand(kind Kind, text string) (Command, error) {
	if text == "" {
		return Command{}, errors.New("a name is required")
	}
	return Command{Kind: kind, Text: text}, nil
}
