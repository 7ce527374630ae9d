package store

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/clue/internal/game"
)

func newSession(t *testing.T, owner string, seed int64) *Session {
	t.Helper()
	g, err := game.New(game.Options{Opponents: 2}, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return NewSession(owner, seed, g)
}

func TestMemoryStore_CRUD(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	st := NewMemoryStore()

	s := newSession(t, "alice", 1)
	r.Equal(s.Game.ID, s.ID)
	r.NoError(st.Create(ctx, s))

	got, err := st.Get(ctx, s.ID)
	r.NoError(err)
	r.Same(s, got)

	r.NoError(st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	r.ErrorIs(err, ErrGameNotFound)
	r.ErrorIs(st.Delete(ctx, s.ID), ErrGameNotFound)
}

func TestMemoryStore_ListByOwner(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	st := NewMemoryStore()

	a1 := newSession(t, "alice", 1)
	a2 := newSession(t, "alice", 2)
	a2.CreatedAt = a1.CreatedAt.Add(time.Second)
	b := newSession(t, "bob", 3)
	for _, s := range []*Session{a1, a2, b} {
		r.NoError(st.Create(ctx, s))
	}

	mine, err := st.List(ctx, "alice")
	r.NoError(err)
	r.Equal([]*Session{a2, a1}, mine)

	none, err := st.List(ctx, "carol")
	r.NoError(err)
	r.Empty(none)
}

func TestSession_SameSeedSameOpponents(t *testing.T) {
	r := require.New(t)

	a := newSession(t, "alice", 9)
	b := newSession(t, "alice", 9)
	for _, s := range []*Session{a, b} {
		r.NoError(s.Game.EndTurn())
		for s.Game.Turn.Phase == game.PhaseOpponentTurn {
			_, err := s.Game.AdvanceOpponentTurn(s.RNG)
			r.NoError(err)
		}
	}
	r.Equal(a.Game.Opponents, b.Game.Opponents)
	r.Equal(a.Game.Turn, b.Game.Turn)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t, "alice", 4)
	require.NoError(t, st.Create(ctx, s))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := st.Get(ctx, s.ID)
			if err != nil {
				return
			}
			got.Lock()
			_ = got.Game.View()
			got.Unlock()
			_, _ = st.List(ctx, "alice")
		}()
	}
	wg.Wait()
}
