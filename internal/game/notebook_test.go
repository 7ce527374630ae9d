package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func statusOf(nb []NotebookEntry, c Card) CardStatus {
	for _, e := range nb {
		if e.Card == c {
			return e.Status
		}
	}
	return ""
}

func TestNotebook(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{})
	g.Human.Room = Kitchen

	nb := g.Notebook()
	r.Len(nb, len(FullDeck()))
	r.Equal(StatusInHand, statusOf(nb, Knife))
	r.Equal(StatusUnknown, statusOf(nb, Wrench))
	r.Equal(CategoryWeapon, nb[len(Suspects)].Category)

	// Given a suggestion opp 0 answers with the Wrench
	_, err := g.Suggest(Triple{Suspect: ProfPlum, Weapon: Wrench, Room: Kitchen})
	r.NoError(err)

	// Then the shown card is tracked
	r.Equal(StatusRevealed, statusOf(g.Notebook(), Wrench))

	// And hidden again when tracking is off, without losing the record
	g.SetAutoTrack(false)
	r.Equal(StatusUnknown, statusOf(g.Notebook(), Wrench))
	r.Contains(g.Revealed, Wrench)

	g.SetAutoTrack(true)
	r.Equal(StatusRevealed, statusOf(g.Notebook(), Wrench))
}

func TestNotebook_InHandWinsOverRevealed(t *testing.T) {
	g := rigged(t, &Rules{})
	g.Revealed = []Card{Knife}
	require.Equal(t, StatusInHand, statusOf(g.Notebook(), Knife))
}

func TestRevealedOnlyGrows(t *testing.T) {
	r := require.New(t)
	g := newGame(t, 3, 11, nil)

	prev := 0
	rng := seeded(11)
	for step := 0; step < 200 && !g.Finished(); step++ {
		switch g.Turn.Phase {
		case PhaseHumanTurn:
			r.NoError(g.EndTurn())
		case PhaseOpponentTurn:
			_, err := g.AdvanceOpponentTurn(rng)
			r.NoError(err)
		case PhaseAwaitingDisproof:
			r.NoError(g.ResolveHumanDisproof(g.Pending.Candidates[0]))
		}
		r.GreaterOrEqual(len(g.Revealed), prev)
		prev = len(g.Revealed)
	}
}
