// internal/console/console.go
//
// Terminal client: reads commands with a liner prompt, applies them to a
// local game and prints the new log lines.

package console

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/peterh/liner"

	"github.com/robalobadob/clue/internal/game"
)

// Console drives one game from text commands.
type Console struct {
	g    *game.Game
	rng  *rand.Rand
	out  io.Writer
	seen int // last event seq printed
}

// New wraps g. rng drives the opponents.
func New(g *game.Game, rng *rand.Rand, out io.Writer) *Console {
	return &Console{g: g, rng: rng, out: out}
}

// Run is the interactive loop. It returns nil on quit or end of input.
func (c *Console) Run() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	C.Header.Fprintln(c.out, "=== CLUE ===  type 'help' for commands")
	c.flush()

	for {
		input, err := line.Prompt(c.prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				C.Info.Fprintln(c.out, "Goodbye!")
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if quit := c.Execute(input); quit {
			return nil
		}
	}
}

func (c *Console) prompt() string {
	switch c.g.Turn.Phase {
	case game.PhaseHumanTurn:
		return fmt.Sprintf("(%s) > ", c.g.Human.Room)
	case game.PhaseAwaitingDisproof:
		return "(disprove) > "
	case game.PhaseOpponentTurn:
		return "(next) > "
	default:
		return "(game over) > "
	}
}

// Execute runs one command line and prints its result. It reports whether
// the player asked to quit.
func (c *Console) Execute(input string) (quit bool) {
	cmd, err := Parse(input)
	if err != nil {
		C.Warn.Fprintln(c.out, err)
		return false
	}
	if cmd.Kind == KindAdvance && strings.TrimSpace(input) == "" && c.g.Turn.Phase != game.PhaseOpponentTurn {
		return false
	}

	switch cmd.Kind {
	case KindQuit:
		C.Info.Fprintln(c.out, "Goodbye!")
		return true
	case KindHelp:
		renderHelp(c.out)
	case KindRules:
		fmt.Fprint(c.out, rulesText)
	case KindMap:
		renderMap(c.out, c.g)
	case KindNotebook:
		renderNotebook(c.out, c.g)
	case KindPlayers:
		renderPlayers(c.out, c.g)
	case KindAutoTrack:
		c.g.SetAutoTrack(!c.g.AutoTrack)
		state := "disabled"
		if c.g.AutoTrack {
			state = "enabled"
		}
		C.Info.Fprintf(c.out, "Auto-tracking %s\n", state)
	case KindMoves:
		if c.g.Turn.Phase != game.PhaseHumanTurn {
			c.fail(game.ErrNotYourTurn)
			break
		}
		fmt.Fprintf(c.out, "Available moves: %s\n", colorizeAll(c.g.ValidMoves()))
	case KindMove:
		c.fail(c.g.Move(cmd.Room))
	case KindEnd:
		c.fail(c.g.EndTurn())
	case KindSuggest:
		_, err := c.g.Suggest(cmd.Triple)
		c.fail(err)
	case KindAccuse:
		_, err := c.g.Accuse(cmd.Triple)
		c.fail(err)
	case KindDisprove:
		c.fail(c.g.ResolveHumanDisproof(cmd.Card))
	case KindAdvance:
		_, err := c.g.AdvanceOpponentTurn(c.rng)
		c.fail(err)
	}
	c.flush()
	return false
}

// fail prints err, if any, with a hint for the common cases.
func (c *Console) fail(err error) {
	if err == nil {
		return
	}
	C.Warn.Fprintln(c.out, err)
	switch {
	case errors.Is(err, game.ErrInvalidMove):
		fmt.Fprintf(c.out, "Available moves: %s\n", colorizeAll(c.g.ValidMoves()))
	case errors.Is(err, game.ErrInvalidDisproofCard) && c.g.Pending != nil:
		fmt.Fprintf(c.out, "Choose one of: %s\n", colorizeAll(c.g.Pending.Candidates))
	case errors.Is(err, game.ErrNotYourTurn) && c.g.Turn.Phase == game.PhaseOpponentTurn:
		fmt.Fprintln(c.out, "Opponents are playing. Press enter (or type 'next').")
	}
}

// flush prints every event not shown yet.
func (c *Console) flush() {
	for _, e := range c.g.Events(c.seen) {
		c.seen = e.Seq
		if s := describe(c.g, e); s != "" {
			fmt.Fprintln(c.out, s)
		}
	}
}

var words = []string{
	"help", "rules", "map", "notebook", "players", "move to ", "suggest ", "accuse ",
	"disprove ", "next", "end", "toggle_autotrack", "quit",
}

func complete(line string) []string {
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, strings.ToLower(line)) {
			out = append(out, w)
		}
	}
	return out
}
