// internal/console/parse.go
//
// Command language of the terminal client.
//
//	help | rules | map | notebook | players
//	move                         list exits
//	move [to] <room>
//	suggest <suspect> with <weapon> in [the] <room>
//	accuse  <suspect> with <weapon> in [the] <room>
//	disprove <card>
//	space | next | <enter>       play the next opponent turn
//	end                          pass
//	toggle_autotrack
//	quit
//
// Card names are matched case-insensitively, and a single distinctive word
// ("mustard", "pipe", "billiard") is enough. The engine only ever sees
// canonical names.

package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/clue/internal/game"
)

// Kind is the verb of a parsed command.
type Kind int

const (
	KindHelp Kind = iota
	KindRules
	KindMap
	KindNotebook
	KindPlayers
	KindMoves
	KindMove
	KindSuggest
	KindAccuse
	KindDisprove
	KindAdvance
	KindEnd
	KindAutoTrack
	KindQuit
)

// Command is one parsed input line.
type Command struct {
	Kind   Kind
	Room   game.Card   // KindMove
	Triple game.Triple // KindSuggest, KindAccuse
	Card   game.Card   // KindDisprove
}

// ErrUnknownCommand is returned for input that is not a command at all.
var ErrUnknownCommand = errors.New("unknown command")

var simple = map[string]Kind{
	"help":             KindHelp,
	"?":                KindHelp,
	"rules":            KindRules,
	"map":              KindMap,
	"notebook":         KindNotebook,
	"players":          KindPlayers,
	"move":             KindMoves,
	"space":            KindAdvance,
	"next":             KindAdvance,
	"":                 KindAdvance,
	"end":              KindEnd,
	"pass":             KindEnd,
	"toggle_autotrack": KindAutoTrack,
	"quit":             KindQuit,
	"exit":             KindQuit,
}

// Parse turns an input line into a Command.
func Parse(input string) (Command, error) {
	line := strings.Join(strings.Fields(strings.ToLower(input)), " ")
	if k, ok := simple[line]; ok {
		return Command{Kind: k}, nil
	}

	verb, rest, _ := strings.Cut(line, " ")
	switch verb {
	case "move", "go":
		rest = strings.TrimPrefix(rest, "to ")
		room, err := Resolve(game.CategoryRoom, rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindMove, Room: room}, nil

	case "suggest", "accuse":
		t, err := parseTriple(rest)
		if err != nil {
			return Command{}, fmt.Errorf("%w (usage: %s <suspect> with <weapon> in <room>)", err, verb)
		}
		k := KindSuggest
		if verb == "accuse" {
			k = KindAccuse
		}
		return Command{Kind: k, Triple: t}, nil

	case "disprove", "show":
		card, err := resolveAny(rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindDisprove, Card: card}, nil
	}
	return Command{}, fmt.Errorf("%w: %q (type 'help')", ErrUnknownCommand, strings.TrimSpace(input))
}

// parseTriple reads "<suspect> with <weapon> in [the] <room>".
func parseTriple(s string) (game.Triple, error) {
	suspect, rest, ok := strings.Cut(s, " with ")
	if !ok {
		return game.Triple{}, fmt.Errorf("%w: missing 'with'", game.ErrInvalidInput)
	}
	weapon, room, ok := strings.Cut(rest, " in ")
	if !ok {
		return game.Triple{}, fmt.Errorf("%w: missing 'in'", game.ErrInvalidInput)
	}

	var (
		t   game.Triple
		err error
	)
	if t.Suspect, err = Resolve(game.CategorySuspect, suspect); err != nil {
		return game.Triple{}, err
	}
	if t.Weapon, err = Resolve(game.CategoryWeapon, weapon); err != nil {
		return game.Triple{}, err
	}
	if t.Room, err = Resolve(game.CategoryRoom, room); err != nil {
		return game.Triple{}, err
	}
	return t, nil
}

// Resolve maps loose user input onto a canonical card of category cat.
func Resolve(cat game.Category, input string) (game.Card, error) {
	return match(game.CardsOf(cat), input, string(cat))
}

func resolveAny(input string) (game.Card, error) {
	return match(game.FullDeck(), input, "card")
}

func match(cards []game.Card, input, what string) (game.Card, error) {
	q := normalise(input)
	if q == "" {
		return "", fmt.Errorf("%w: missing %s", game.ErrInvalidInput, what)
	}
	for _, c := range cards {
		if normalise(string(c)) == q {
			return c, nil
		}
	}
	// a single word of a multi-word name, if only one card has it
	hits := lo.Filter(cards, func(c game.Card, _ int) bool {
		return lo.Contains(strings.Fields(normalise(string(c))), q)
	})
	if len(hits) == 1 {
		return hits[0], nil
	}
	return "", fmt.Errorf("%w: %q is not a %s", game.ErrInvalidInput, strings.TrimSpace(input), what)
}

// normalise lowercases, drops a leading "the" and all dots.
func normalise(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "the ")
	s = strings.ReplaceAll(s, ".", "")
	return strings.Join(strings.Fields(s), " ")
}
