// Package sim plays whole games against the engine with a scripted human
// and checks the engine's invariants after every step.
package sim

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/clue/internal/game"
)

// Report totals a Run.
type Report struct {
	Games        int
	HumanWins    int
	OpponentWins int
	Unfinished   int
	Steps        int
}

type ActionRecord struct {
	Game   int
	Step   int
	Phase  game.Phase
	Action string
}

// Run plays games games, the i-th one seeded with seed+i and 1..5 opponents
// in rotation. A game still running after maxSteps counts as unfinished.
func Run(seed int64, games, maxSteps int) (Report, error) {
	rep := Report{Games: games}
	for n := 0; n < games; n++ {
		s := seed + int64(n)
		rng := rand.New(rand.NewSource(s))
		g, err := game.New(game.Options{Opponents: n%5 + 1}, rng)
		if err != nil {
			return rep, failure(s, n, 0, "", nil, fmt.Sprintf("new game: %v", err))
		}
		if err := checkInvariants(g, 0); err != nil {
			return rep, failure(s, n, 0, g.Turn.Phase, nil, err.Error())
		}

		records := []ActionRecord{}
		for step := 0; step < maxSteps && !g.Finished(); step++ {
			revealed := len(g.Revealed)
			action, err := play(g, rng)
			records = append(records, ActionRecord{Game: n, Step: step, Phase: g.Turn.Phase, Action: action})
			if err != nil {
				return rep, failure(s, n, step, g.Turn.Phase, records, fmt.Sprintf("apply error: %v", err))
			}
			if err := checkInvariants(g, revealed); err != nil {
				return rep, failure(s, n, step, g.Turn.Phase, records, err.Error())
			}
			rep.Steps++
		}

		switch {
		case !g.Finished():
			rep.Unfinished++
		case g.Outcome.HumanWon:
			rep.HumanWins++
		case g.Outcome.Winner >= 0:
			rep.OpponentWins++
		}
	}
	return rep, nil
}

// play makes one move for whoever is due and describes it.
func play(g *game.Game, rng *rand.Rand) (string, error) {
	switch g.Turn.Phase {
	case game.PhaseAwaitingDisproof:
		card := g.Pending.Candidates[0]
		return "disprove " + string(card), g.ResolveHumanDisproof(card)
	case game.PhaseOpponentTurn:
		r, err := g.AdvanceOpponentTurn(rng)
		return fmt.Sprintf("advance %d -> %s", r.Opponent, r.To), err
	case game.PhaseHumanTurn:
		return humanTurn(g, rng)
	}
	return "", fmt.Errorf("no move in phase %s", g.Turn.Phase)
}

// humanTurn accuses once one card per category is left, suggests while the
// current room is still unknown, and otherwise walks towards unknown rooms.
// Undealt cards are public, so they never count as unknown.
func humanTurn(g *game.Game, rng *rand.Rand) (string, error) {
	unknown := lo.FilterMap(g.Notebook(), func(e game.NotebookEntry, _ int) (game.Card, bool) {
		return e.Card, e.Status == game.StatusUnknown && !slices.Contains(g.Undealt, e.Card)
	})
	left := func(cards []game.Card) []game.Card { return lo.Intersect(cards, unknown) }
	suspects, weapons, rooms := left(game.Suspects), left(game.Weapons), left(game.Rooms)

	if len(suspects) == 1 && len(weapons) == 1 && len(rooms) == 1 {
		t := game.Triple{Suspect: suspects[0], Weapon: weapons[0], Room: rooms[0]}
		a, err := g.Accuse(t)
		if err == nil && !a.Correct {
			err = fmt.Errorf("deduced %s but the solution is %s", t, a.Solution)
		}
		return "accuse " + t.String(), err
	}

	if !g.Turn.Suggested && slices.Contains(rooms, g.Human.Room) {
		t := game.Triple{Suspect: pick(rng, suspects), Weapon: pick(rng, weapons), Room: g.Human.Room}
		_, err := g.Suggest(t)
		return "suggest " + t.String(), err
	}

	moves := g.ValidMoves()
	to := pick(rng, moves)
	if m, ok := lo.Find(moves, func(r game.Card) bool { return slices.Contains(rooms, r) }); ok {
		to = m
	}
	return "move " + string(to), g.Move(to)
}

func pick(rng *rand.Rand, from []game.Card) game.Card {
	return from[rng.Intn(len(from))]
}

func checkInvariants(g *game.Game, revealedBefore int) error {
	// every card exactly once across solution, hands and undealt
	seen := map[game.Card]int{}
	for _, c := range g.Solution.Cards() {
		seen[c]++
	}
	for _, c := range g.Human.Hand {
		seen[c]++
	}
	for _, o := range g.Opponents {
		for _, c := range o.Hand {
			seen[c]++
		}
	}
	for _, c := range g.Undealt {
		seen[c]++
	}
	deck := game.FullDeck()
	if len(seen) != len(deck) {
		return fmt.Errorf("card count mismatch: %d distinct, want %d", len(seen), len(deck))
	}
	for c, n := range seen {
		if n != 1 {
			return fmt.Errorf("card %s appears %d times", c, n)
		}
	}

	for _, c := range g.Revealed {
		if slices.Contains(g.Solution.Cards(), c) {
			return fmt.Errorf("solution card %s was revealed", c)
		}
	}
	if len(g.Revealed) < revealedBefore {
		return fmt.Errorf("revealed record shrank: %d -> %d", revealedBefore, len(g.Revealed))
	}
	if len(lo.Uniq(g.Revealed)) != len(g.Revealed) {
		return fmt.Errorf("duplicate in revealed record")
	}

	switch g.Turn.Phase {
	case game.PhaseHumanTurn:
		if g.Pending != nil || g.Outcome != nil {
			return fmt.Errorf("human turn with pending=%v outcome=%v", g.Pending != nil, g.Outcome != nil)
		}
	case game.PhaseOpponentTurn:
		i := g.Turn.Opponent
		if i < 0 || i >= len(g.Opponents) || !g.Opponents[i].Active {
			return fmt.Errorf("opponent turn for invalid or eliminated opponent %d", i)
		}
		if g.Pending != nil {
			return fmt.Errorf("opponent turn with a pending disproof")
		}
	case game.PhaseAwaitingDisproof:
		p := g.Pending
		if p == nil || len(p.Candidates) < 2 {
			return fmt.Errorf("awaiting disproof without two candidates")
		}
		for _, c := range p.Candidates {
			if !slices.Contains(g.Human.Hand, c) || !slices.Contains(p.Suggestion.Cards(), c) {
				return fmt.Errorf("bad disproof candidate %s", c)
			}
		}
	case game.PhaseGameOver:
		if g.Outcome == nil {
			return fmt.Errorf("game over without an outcome")
		}
	default:
		return fmt.Errorf("unknown phase %q", g.Turn.Phase)
	}

	for _, o := range g.Opponents {
		if !o.Room.Is(game.CategoryRoom) {
			return fmt.Errorf("opponent %s in unknown room %q", o.Character, o.Room)
		}
	}
	if !g.Human.Room.Is(game.CategoryRoom) {
		return fmt.Errorf("human in unknown room %q", g.Human.Room)
	}
	return nil
}

func failure(seed int64, n, step int, phase game.Phase, records []ActionRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	var log strings.Builder
	for _, r := range records[start:] {
		fmt.Fprintf(&log, "[g%d s%d %v] %s\n", r.Game, r.Step, r.Phase, r.Action)
	}
	return fmt.Errorf("seed=%d game=%d step=%d phase=%v reason=%s\nlast actions:\n%s",
		seed, n, step, phase, reason, log.String())
}
