package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{})

	all := g.Events(0)
	r.Len(all, 2)
	r.Equal(EventGameStarted, all[0].Type)
	r.Equal(EventTurnStarted, all[1].Type)
	for i, e := range all {
		r.Equal(i+1, e.Seq)
	}

	r.NoError(g.Move(Study))
	tail := g.Events(2)
	r.Equal(3, tail[0].Seq)
	r.Equal(EventMoved, tail[0].Type)
	r.Equal(Study, tail[0].Room)
	r.Equal(HumanIndex, tail[0].Actor)

	r.Empty(g.Events(len(g.Log)))
	r.Empty(g.Events(1000))
	r.Len(g.Events(-5), len(g.Log))
}

func TestView_HidesCards(t *testing.T) {
	r := require.New(t)
	g := rigged(t, &Rules{})

	v := g.View()
	r.Nil(v.Solution)
	r.Equal(g.Human.Hand, v.Human.Hand)
	r.Len(v.Opponents, 2)
	r.Equal(6, v.Opponents[0].HandSize)
	r.Equal("explorer", v.Opponents[0].Policy)
	r.Equal("connector", v.Opponents[1].Policy)
	r.Equal(ValidMoves(Hall), v.ValidMoves)
	r.Equal(len(g.Log), v.LastSeq)

	_, err := g.Accuse(g.Solution)
	r.NoError(err)
	v = g.View()
	r.NotNil(v.Solution)
	r.Equal(g.Solution, *v.Solution)
	r.Empty(v.ValidMoves)
}
