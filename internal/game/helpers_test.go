package game

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func newGame(t *testing.T, opponents int, seed int64, rules *Rules) *Game {
	t.Helper()
	g, err := New(Options{Opponents: opponents, Rules: rules}, seeded(seed))
	require.NoError(t, err)
	return g
}

// rigged returns a two-opponent game with a known envelope and hands:
//
//	solution: Prof. Plum / Rope / Library
//	human:    Miss Scarlet, Mr. Green, Candlestick, Knife, Kitchen, Ballroom
//	opp 0:    Col. Mustard, Lead Pipe, Wrench, Conservatory, Billiard Room, Hall
//	opp 1:    Mrs. White, Mrs. Peacock, Revolver, Study, Lounge, Dining Room
func rigged(t *testing.T, rules *Rules) *Game {
	t.Helper()
	g := newGame(t, 2, 1, rules)
	g.Solution = Triple{Suspect: ProfPlum, Weapon: Rope, Room: Library}
	g.Human.Hand = []Card{MissScarlet, MrGreen, Candlestick, Knife, Kitchen, Ballroom}
	g.Opponents[0].Hand = []Card{ColMustard, LeadPipe, Wrench, Conservatory, BilliardRoom, Hall}
	g.Opponents[1].Hand = []Card{MrsWhite, MrsPeacock, Revolver, Study, Lounge, DiningRoom}
	g.Undealt = []Card{}
	return g
}

// snapshot deep-copies the parts of g a command could touch.
func snapshot(g *Game) Game {
	c := *g
	c.Human.Hand = slices.Clone(g.Human.Hand)
	c.Opponents = slices.Clone(g.Opponents)
	c.Undealt = slices.Clone(g.Undealt)
	c.Revealed = slices.Clone(g.Revealed)
	c.Log = slices.Clone(g.Log)
	if g.Pending != nil {
		p := *g.Pending
		c.Pending = &p
	}
	return c
}

func allHeld(g *Game) []Card {
	out := slices.Clone(g.Human.Hand)
	for _, o := range g.Opponents {
		out = append(out, o.Hand...)
	}
	return out
}
