package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func without(cards []Card, drop ...Card) []Card {
	out := []Card{}
	for _, c := range cards {
		keep := true
		for _, d := range drop {
			if c == d {
				keep = false
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

func TestOpponent_ConnectorPicksBestConnected(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{})
	r.NoError(g.EndTurn())
	_, err := g.AdvanceOpponentTurn(seeded(1)) // opp 0, explorer
	r.NoError(err)

	// opp 1 is the connector; from the Hall the Study has four exits
	rep, err := g.AdvanceOpponentTurn(seeded(1))
	r.NoError(err)
	r.Equal(1, rep.Opponent)
	r.Equal(Hall, rep.From)
	r.Equal(Study, rep.To)
}

func TestOpponent_ConnectorTieBreak(t *testing.T) {
	g := rigged(t, &Rules{})

	// Library's exits are Study(4), Billiard Room(3)
	g.Opponents[1].Room = Library
	require.Equal(t, Study, g.opponentMove(1, seeded(1)))

	// Conservatory's exits all have three; the first listed wins
	g.Opponents[1].Room = Conservatory
	require.Equal(t, Ballroom, g.opponentMove(1, seeded(1)))
}

func TestOpponent_ExplorerAvoidsOccupiedRooms(t *testing.T) {
	r := require.New(t)
	g := newGame(t, 3, 5, &Rules{})
	// Hall exits: Dining Room, Billiard Room, Study, Ballroom
	g.Human.Room = DiningRoom
	g.Opponents[1].Room = BilliardRoom
	g.Opponents[2].Room = Study

	for seed := int64(0); seed < 10; seed++ {
		r.Equal(Ballroom, g.opponentMove(0, seeded(seed)))
	}

	// every exit taken: any neighbour will do
	g.Opponents[0].Room = Library
	g.Human.Room = Study
	g.Opponents[1].Room = BilliardRoom
	for seed := int64(0); seed < 10; seed++ {
		r.Contains([]Card{Study, BilliardRoom}, g.opponentMove(0, seeded(seed)))
	}
}

func TestOpponent_RandomStaysOnTheMap(t *testing.T) {
	g := newGame(t, 3, 5, &Rules{})
	for seed := int64(0); seed < 20; seed++ {
		next := g.opponentMove(2, seeded(seed))
		require.True(t, Adjacent(g.Opponents[2].Room, next))
	}
}

func TestOpponent_SuggestionUsesCurrentRoomAndUnheldCards(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{SuggestChance: 1})
	g.Human.Hand = []Card{}
	r.NoError(g.EndTurn())

	for seed := int64(0); seed < 10; seed++ {
		g.Turn = Turn{Phase: PhaseOpponentTurn, Opponent: 0, Round: 1}
		rep, err := g.AdvanceOpponentTurn(seeded(seed))
		r.NoError(err)
		r.NotNil(rep.Suggestion)
		r.Equal(rep.To, rep.Suggestion.Room)
		r.NotContains(g.Opponents[0].Hand, rep.Suggestion.Suspect)
		r.NotContains(g.Opponents[0].Hand, rep.Suggestion.Weapon)
	}
}

func TestUnheld_FallsBackToWholeCategory(t *testing.T) {
	require.Equal(t, Weapons, unheld(Weapons, Weapons))
	require.Equal(t, []Card{Rope}, unheld(Weapons, without(Weapons, Rope)))
}

func TestOpponent_HumanShowsOnlyMatch(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{SuggestChance: 1})
	// opp 0 can only suggest Miss Scarlet with the Knife
	g.Opponents[0].Hand = append(without(Suspects, MissScarlet), without(Weapons, Knife)...)
	g.Opponents[1].Hand = []Card{}
	g.Human.Hand = []Card{MissScarlet}
	r.NoError(g.EndTurn())

	rep, err := g.AdvanceOpponentTurn(seeded(2))
	r.NoError(err)
	r.Equal(Triple{Suspect: MissScarlet, Weapon: Knife, Room: rep.To}, *rep.Suggestion)
	r.False(rep.AwaitingHuman)
	r.NotNil(rep.Disproof)
	r.Equal(HumanIndex, rep.Disproof.By)
	r.Equal(MissScarlet, rep.Disproof.Card)
	r.Contains(g.Revealed, MissScarlet)
	r.Equal(1, g.Turn.Opponent)
}

func TestOpponent_OtherOpponentDisproves(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{SuggestChance: 1})
	g.Opponents[0].Hand = append(without(Suspects, MissScarlet), without(Weapons, Knife)...)
	g.Opponents[1].Hand = []Card{Knife}
	g.Human.Hand = []Card{}
	r.NoError(g.EndTurn())

	rep, err := g.AdvanceOpponentTurn(seeded(2))
	r.NoError(err)
	r.NotNil(rep.Disproof)
	r.Equal(1, rep.Disproof.By)
	r.Equal(Knife, rep.Disproof.Card)
}

func TestOpponent_AwaitingHumanDisproof(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{SuggestChance: 1, AccuseChance: 1})
	g.Opponents[0].Hand = []Card{}
	// every suspect and weapon: any suggestion matches twice
	g.Human.Hand = append(append([]Card{}, Suspects...), Weapons...)
	r.NoError(g.EndTurn())

	rep, err := g.AdvanceOpponentTurn(seeded(4))
	r.NoError(err)
	r.True(rep.AwaitingHuman)
	r.Nil(rep.Accusation, "the accusation roll waits for the human")
	r.Len(rep.Candidates, 2)
	r.Equal(PhaseAwaitingDisproof, g.Turn.Phase)
	r.NotNil(g.Pending)
	r.Equal(0, g.Pending.Suggester)

	before := snapshot(g)
	r.ErrorIs(g.Move(Study), ErrNotYourTurn)
	r.ErrorIs(g.EndTurn(), ErrNotYourTurn)
	_, err = g.AdvanceOpponentTurn(seeded(1))
	r.ErrorIs(err, ErrNotYourTurn)
	r.ErrorIs(g.ResolveHumanDisproof(Library), ErrInvalidDisproofCard)
	r.ErrorIs(g.ResolveHumanDisproof("Spoon"), ErrInvalidInput)
	r.Equal(before, *g)

	shown := rep.Candidates[1]
	r.NoError(g.ResolveHumanDisproof(shown))
	r.Nil(g.Pending)
	r.Contains(g.Revealed, shown)
	r.Equal(PhaseOpponentTurn, g.Turn.Phase)
	r.Equal(1, g.Turn.Opponent)
	r.ErrorIs(g.ResolveHumanDisproof(shown), ErrNoPendingDisproof)
}

func TestOpponent_WrongAccusationEliminates(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{AccuseChance: 1})
	// opp 0 holds Col. Mustard, so its guess can never match this envelope
	g.Solution = Triple{Suspect: ColMustard, Weapon: Rope, Room: Library}
	r.NoError(g.EndTurn())

	rep, err := g.AdvanceOpponentTurn(seeded(1))
	r.NoError(err)
	r.NotNil(rep.Accusation)
	r.False(rep.Correct)
	r.True(rep.Eliminated)
	r.False(g.Opponents[0].Active)
	r.False(g.Finished())
	r.Equal(1, g.Turn.Opponent)

	// opp 1 falls the same way, and the human keeps every turn after
	g.Solution = Triple{Suspect: MrsWhite, Weapon: Rope, Room: Library}
	_, err = g.AdvanceOpponentTurn(seeded(1))
	r.NoError(err)
	r.False(g.Opponents[1].Active)
	r.Equal(PhaseHumanTurn, g.Turn.Phase)

	r.NoError(g.EndTurn())
	r.Equal(PhaseHumanTurn, g.Turn.Phase)
	r.Equal(3, g.Turn.Round)
}

func TestOpponent_EliminatedSkipped(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{})
	g.Opponents[0].Active = false

	r.NoError(g.EndTurn())
	r.Equal(1, g.Turn.Opponent)
}

func TestOpponent_CorrectAccusationWins(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{AccuseChance: 1})
	// opp 0 holds everything but the envelope
	g.Opponents[0].Hand = append(append(without(Suspects, ProfPlum), without(Weapons, Rope)...), without(Rooms, Library)...)
	r.NoError(g.EndTurn())

	rep, err := g.AdvanceOpponentTurn(seeded(1))
	r.NoError(err)
	r.True(rep.Correct)
	r.True(g.Finished())
	r.False(g.Outcome.HumanWon)
	r.Equal(0, g.Outcome.Winner)
	r.Equal(g.Solution, *rep.Accusation)
}
