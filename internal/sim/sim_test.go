package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/clue/internal/game"
)

func TestSelfPlayManySeeds(t *testing.T) {
	seeds := []int64{1, 7, 42, 1234, 99991}
	for _, seed := range seeds {
		rep, err := Run(seed, 25, 3000)
		require.NoError(t, err)
		require.Equal(t, 25, rep.Games)
		require.Equal(t, rep.Games, rep.HumanWins+rep.OpponentWins+rep.Unfinished)
		require.Positive(t, rep.Steps)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a, err := Run(5, 10, 2000)
	require.NoError(t, err)
	b, err := Run(5, 10, 2000)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestStepLimitLeavesGamesUnfinished(t *testing.T) {
	rep, err := Run(3, 4, 1)
	require.NoError(t, err)
	require.Equal(t, 4, rep.Unfinished)
	require.Equal(t, 4, rep.Steps)
}

func TestCheckInvariantsCatchesBrokenState(t *testing.T) {
	g, err := game.New(game.Options{Opponents: 2}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, checkInvariants(g, 0))

	// a solution card slipped into a hand
	g.Human.Hand = append(g.Human.Hand, g.Solution.Suspect)
	require.Error(t, checkInvariants(g, 0))
	g.Human.Hand = g.Human.Hand[:len(g.Human.Hand)-1]

	g.Revealed = []game.Card{g.Human.Hand[0]}
	require.Error(t, checkInvariants(g, 2), "revealed record must not shrink")

	g.Turn.Phase = game.PhaseAwaitingDisproof
	require.Error(t, checkInvariants(g, 0), "awaiting disproof needs a pending suggestion")
}

func TestFailureCarriesSeedAndActions(t *testing.T) {
	records := []ActionRecord{}
	for i := 0; i < 30; i++ {
		records = append(records, ActionRecord{Step: i, Phase: game.PhaseHumanTurn, Action: "move Hall"})
	}
	err := failure(77, 2, 29, game.PhaseHumanTurn, records, "boom")
	require.ErrorContains(t, err, "seed=77")
	require.ErrorContains(t, err, "reason=boom")
	require.ErrorContains(t, err, "[g0 s29 human_turn] move Hall")
	require.NotContains(t, err.Error(), "s9 human_turn")
}
