package history

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/clue/internal/game"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "clue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func result(id string, won bool, at time.Time) Result {
	return Result{
		GameID:     id,
		PlayerID:   "p1",
		Opponents:  2,
		Difficulty: game.DifficultyMedium,
		HumanWon:   won,
		Winner:     "human",
		Rounds:     4,
		Solution:   game.Triple{Suspect: game.ProfPlum, Weapon: game.Rope, Room: game.Library},
		StartedAt:  at.Add(-time.Minute),
		FinishedAt: at,
	}
}

func TestOpen_MigratesOnce(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "clue.db")

	db, err := Open(path)
	r.NoError(err)
	r.NoError(db.Close())

	db, err = Open(path)
	r.NoError(err)
	defer db.Close()

	var n int
	r.NoError(db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	r.Equal(2, n)
}

func TestOpen_InMemory(t *testing.T) {
	db, err := Open("")
	require.NoError(t, err)
	defer db.Close()

	st := NewStore(db)
	require.NoError(t, st.Record(context.Background(), result("g1", true, time.Now())))
	got, err := st.Recent(context.Background(), "p1", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestStore_RecentAndStats(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	st := openTemp(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.NoError(st.Record(ctx, result("g1", false, base)))
	r.NoError(st.Record(ctx, result("g2", true, base.Add(time.Hour))))
	r.NoError(st.Record(ctx, result("g3", true, base.Add(2*time.Hour))))
	// duplicates are ignored
	r.NoError(st.Record(ctx, result("g3", false, base.Add(3*time.Hour))))

	recent, err := st.Recent(ctx, "p1", 2)
	r.NoError(err)
	r.Len(recent, 2)
	r.Equal("g3", recent[0].GameID)
	r.Equal("g2", recent[1].GameID)
	r.Equal(game.Library, recent[0].Solution.Room)
	r.True(recent[0].FinishedAt.Equal(base.Add(2 * time.Hour)))

	stats, err := st.Stats(ctx, "p1")
	r.NoError(err)
	r.Equal(Stats{Played: 3, Wins: 2, Streak: 2}, stats)

	empty, err := st.Stats(ctx, "nobody")
	r.NoError(err)
	r.Equal(Stats{}, empty)
}

func TestFromGame(t *testing.T) {
	r := require.New(t)
	g, err := game.New(game.Options{Opponents: 3}, rand.New(rand.NewSource(1)))
	r.NoError(err)

	_, ok := FromGame("p1", "", time.Now(), g)
	r.False(ok)

	_, err = g.Accuse(g.Solution)
	r.NoError(err)
	res, ok := FromGame("p1", "2026-03-01", time.Now(), g)
	r.True(ok)
	r.True(res.HumanWon)
	r.Equal("human", res.Winner)
	r.Equal(3, res.Opponents)
	r.Equal(g.Solution, res.Solution)
	r.Equal("2026-03-01", res.Daily)
}
