// internal/console/render.go
//
// Colours, event lines and tables for the terminal client.

package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"

	"github.com/robalobadob/clue/internal/game"
)

var C = struct {
	Yes, No, Maybe, Info, Warn, Header, You, Opp *color.Color
}{
	Yes:    color.New(color.FgGreen),
	No:     color.New(color.FgRed),
	Maybe:  color.New(color.FgYellow),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	You:    color.New(color.FgHiGreen, color.Bold),
	Opp:    color.New(color.FgHiRed),
}

var cardColors = map[game.Card]*color.Color{
	game.MissScarlet:  color.New(color.FgRed, color.Bold),
	game.ColMustard:   color.New(color.FgYellow, color.Bold),
	game.MrsWhite:     color.New(color.FgHiWhite, color.Bold),
	game.MrGreen:      color.New(color.FgGreen, color.Bold),
	game.MrsPeacock:   color.New(color.FgBlue, color.Bold),
	game.ProfPlum:     color.New(color.FgMagenta, color.Bold),
	game.Candlestick:  color.New(color.FgHiYellow),
	game.Knife:        color.New(color.FgHiWhite),
	game.LeadPipe:     color.New(color.FgHiBlack),
	game.Revolver:     color.New(color.FgYellow),
	game.Rope:         color.New(color.FgHiRed),
	game.Wrench:       color.New(color.FgWhite),
	game.Kitchen:      color.New(color.FgHiRed),
	game.Ballroom:     color.New(color.FgHiMagenta),
	game.Conservatory: color.New(color.FgHiGreen),
	game.BilliardRoom: color.New(color.FgHiCyan),
	game.Library:      color.New(color.FgMagenta),
	game.Study:        color.New(color.FgHiYellow),
	game.Hall:         color.New(color.FgYellow),
	game.Lounge:       color.New(color.FgHiMagenta),
	game.DiningRoom:   color.New(color.FgCyan),
}

func colorize(c game.Card) string {
	if col, ok := cardColors[c]; ok {
		return col.Sprint(string(c))
	}
	return string(c)
}

func colorizeAll(cards []game.Card) string {
	return strings.Join(lo.Map(cards, func(c game.Card, _ int) string { return colorize(c) }), ", ")
}

func triple(t *game.Triple) string {
	if t == nil {
		return "?"
	}
	return fmt.Sprintf("%s with the %s in the %s", colorize(t.Suspect), colorize(t.Weapon), colorize(t.Room))
}

// who names participant idx the way the log reads: "You" or "Mr. Green (AI_2)".
func who(g *game.Game, idx int) string {
	switch {
	case idx == game.HumanIndex:
		return C.You.Sprint("You")
	case idx >= 0 && idx < len(g.Opponents):
		return fmt.Sprintf("%s (%s)", colorize(g.Opponents[idx].Character), C.Opp.Sprintf("AI_%d", idx+1))
	default:
		return "Nobody"
	}
}

// describe renders one event, or "" for events the log does not show.
func describe(g *game.Game, e game.Event) string {
	switch e.Type {
	case game.EventGameStarted:
		return fmt.Sprintf("A body has been found. You are %s; everyone starts in the %s.",
			colorize(g.Human.Character), colorize(e.Room))
	case game.EventMoved:
		return fmt.Sprintf("%s moved to the %s", who(g, e.Actor), colorize(e.Room))
	case game.EventSuggested:
		return fmt.Sprintf("%s suggest%s: %s", who(g, e.Actor), verbS(e.Actor), triple(e.Triple))
	case game.EventDisproved:
		target := game.NoParticipant
		if e.Target != nil {
			target = *e.Target
		}
		if e.Actor == game.HumanIndex {
			return fmt.Sprintf("You showed the %s to %s", colorize(e.Card), who(g, target))
		}
		return fmt.Sprintf("%s disproves with the %s", who(g, e.Actor), colorize(e.Card))
	case game.EventNotDisproved:
		return C.Maybe.Sprint("No one can disprove the suggestion")
	case game.EventDisproofRequested:
		return C.Warn.Sprintf("You can disprove with: %s. Type 'disprove <card>'.", colorizeAll(e.Candidates))
	case game.EventAccused:
		verdict := C.No.Sprint("WRONG")
		if e.Correct != nil && *e.Correct {
			verdict = C.Yes.Sprint("CORRECT")
		}
		return fmt.Sprintf("%s make%s a final accusation: %s ... %s", who(g, e.Actor), verbS(e.Actor), triple(e.Triple), verdict)
	case game.EventEliminated:
		return fmt.Sprintf("%s is out of the game!", who(g, e.Actor))
	case game.EventTurnStarted:
		if e.Actor == game.HumanIndex {
			return C.You.Sprintf("Your turn! (round %d)", g.Turn.Round)
		}
		return C.Info.Sprintf("%s's turn. Press enter (or type 'next').", stripWho(g, e.Actor))
	case game.EventGameOver:
		msg := C.No.Sprint("You lose.")
		switch {
		case e.Correct != nil && *e.Correct:
			msg = C.Yes.Sprint("You solved the mystery!")
		case e.Actor >= 0:
			msg = C.No.Sprintf("%s solved it first. You lose.", g.Name(e.Actor))
		}
		return fmt.Sprintf("%s The solution was %s.", msg, triple(e.Triple))
	}
	return ""
}

func verbS(actor int) string {
	if actor == game.HumanIndex {
		return ""
	}
	return "s"
}

func stripWho(g *game.Game, idx int) string {
	return fmt.Sprintf("%s (AI_%d)", g.Name(idx), idx+1)
}

// ------------------------------- tables ------------------------------------

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderHelp(w io.Writer) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Command", "Description"})
	t.AppendRows([]table.Row{
		{"move", "List the rooms you can move to"},
		{"move to <room>", "Move to an adjacent room (ends your turn)"},
		{"suggest <suspect> with <weapon> in <room>", "Suggest in the room you stand in (ends your turn)"},
		{"accuse <suspect> with <weapon> in <room>", "Final accusation: right wins, wrong loses"},
		{"disprove <card>", "Show a card when an opponent waits on you"},
		{"next / space / enter", "Play the next opponent turn"},
		{"end", "End your turn without moving"},
		{"map", "Rooms, exits and who is where"},
		{"notebook", "Your detective's checklist"},
		{"players", "Everyone in the game"},
		{"toggle_autotrack", "Auto-mark revealed cards in the notebook"},
		{"rules", "How to play"},
		{"quit", "Leave the game"},
	})
	t.Render()
}

const rulesText = `OBJECTIVE
  Work out who did it, with what, and where.

YOUR TURN (one action)
  - move to an adjacent room, or
  - suggest a suspect and weapon in the room you are in, or
  - make a final accusation, or
  - end your turn.

SUGGESTIONS
  Opponents are asked in order; the first one holding a named card shows
  you one. Only one suggestion per turn.

OPPONENT TURNS
  Each opponent moves and may suggest or accuse. If you hold more than one
  card of their suggestion you choose which one to show.

WINNING
  A correct accusation wins. A wrong one loses at once. An opponent who
  accuses wrongly is out, but still shows cards.
`

func renderMap(w io.Writer, g *game.Game) {
	here := map[game.Card][]string{}
	here[g.Human.Room] = append(here[g.Human.Room], C.You.Sprint("You"))
	for i, o := range g.Opponents {
		here[o.Room] = append(here[o.Room], fmt.Sprintf("AI_%d", i+1))
	}

	t := newTable(w)
	t.SetTitle("MANSION MAP")
	t.AppendHeader(table.Row{"Room", "Exits", "Here"})
	for _, room := range game.Rooms {
		t.AppendRow(table.Row{colorize(room), colorizeAll(game.ValidMoves(room)), strings.Join(here[room], ", ")})
	}
	t.Style().Title.Align = text.AlignCenter
	t.Render()
}

func renderNotebook(w io.Writer, g *game.Game) {
	t := newTable(w)
	t.SetTitle("DETECTIVE'S CHECKLIST")
	t.AppendHeader(table.Row{"Card", "Type", "Status"})
	var last game.Category
	for _, e := range g.Notebook() {
		if last != "" && e.Category != last {
			t.AppendSeparator()
		}
		last = e.Category
		status := C.Maybe.Sprint("? unknown")
		switch e.Status {
		case game.StatusInHand:
			status = C.Yes.Sprint("✔ in hand")
		case game.StatusRevealed:
			status = C.No.Sprint("✖ revealed")
		}
		t.AppendRow(table.Row{colorize(e.Card), e.Category, status})
	}
	on := C.No.Sprint("OFF")
	if g.AutoTrack {
		on = C.Yes.Sprint("ON")
	}
	t.SetCaption("Auto-tracking: %s (toggle_autotrack)", on)
	t.Style().Title.Align = text.AlignCenter
	t.Render()
}

func renderPlayers(w io.Writer, g *game.Game) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Player", "Character", "Room", "Cards", "Status"})
	t.AppendRow(table.Row{C.You.Sprint("You"), colorize(g.Human.Character), colorize(g.Human.Room), len(g.Human.Hand), "playing"})
	for i, o := range g.Opponents {
		status := o.Policy.String()
		if !o.Active {
			status = C.No.Sprint("out")
		}
		t.AppendRow(table.Row{C.Opp.Sprintf("AI_%d", i+1), colorize(o.Character), colorize(o.Room), len(o.Hand), status})
	}
	t.Render()
}
