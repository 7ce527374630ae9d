// internal/history/store.go
//
// Finished-game history, per player.
//   - Record: one row when a game reaches game_over.
//   - Recent: a player's latest games.
//   - Stats:  played / won / current streak.

package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/robalobadob/clue/internal/game"
)

// Result is one finished game.
type Result struct {
	GameID     string          `json:"gameId"`
	PlayerID   string          `json:"-"`
	Daily      string          `json:"daily,omitempty"`
	Opponents  int             `json:"opponents"`
	Difficulty game.Difficulty `json:"difficulty"`
	HumanWon   bool            `json:"humanWon"`
	Winner     string          `json:"winner"`
	Rounds     int             `json:"rounds"`
	Solution   game.Triple     `json:"solution"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
}

// timeLayout sorts lexically, unlike RFC3339Nano.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Stats summarises a player's results.
type Stats struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Streak int `json:"streak"`
}

// Store reads and writes the games table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// FromGame builds the Result for a finished game. ok is false while the game
// is still running.
func FromGame(playerID, daily string, startedAt time.Time, g *game.Game) (Result, bool) {
	if !g.Finished() || g.Outcome == nil {
		return Result{}, false
	}
	winner := "nobody"
	switch {
	case g.Outcome.HumanWon:
		winner = "human"
	case g.Outcome.Winner >= 0:
		winner = string(g.Name(g.Outcome.Winner))
	}
	return Result{
		GameID:     g.ID,
		PlayerID:   playerID,
		Daily:      daily,
		Opponents:  len(g.Opponents),
		Difficulty: g.Difficulty,
		HumanWon:   g.Outcome.HumanWon,
		Winner:     winner,
		Rounds:     g.Turn.Round,
		Solution:   g.Solution,
		StartedAt:  startedAt.UTC(),
		FinishedAt: time.Now().UTC(),
	}, true
}

// Record stores r. Recording the same game twice is a no-op.
func (s *Store) Record(ctx context.Context, r Result) error {
	var daily any
	if r.Daily != "" {
		daily = r.Daily
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO games
		   (id, player_id, daily_date, opponents, difficulty, human_won, winner, rounds,
		    suspect, weapon, room, started_at, finished_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.GameID, r.PlayerID, daily, r.Opponents, string(r.Difficulty), r.HumanWon, r.Winner, r.Rounds,
		string(r.Solution.Suspect), string(r.Solution.Weapon), string(r.Solution.Room),
		r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
	)
	return err
}

// Recent returns up to limit of the player's games, newest first.
func (s *Store) Recent(ctx context.Context, playerID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(daily_date,''), opponents, difficulty, human_won, winner, rounds,
		        suspect, weapon, room, started_at, finished_at
		   FROM games WHERE player_id=?
		  ORDER BY finished_at DESC LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		r := Result{PlayerID: playerID}
		var difficulty, suspect, weapon, room, started, finished string
		if err := rows.Scan(&r.GameID, &r.Daily, &r.Opponents, &difficulty, &r.HumanWon, &r.Winner, &r.Rounds,
			&suspect, &weapon, &room, &started, &finished); err != nil {
			return nil, err
		}
		r.Difficulty = game.Difficulty(difficulty)
		r.Solution = game.Triple{Suspect: game.Card(suspect), Weapon: game.Card(weapon), Room: game.Card(room)}
		r.StartedAt, _ = time.Parse(timeLayout, started)
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats counts played and won games and the current winning streak.
func (s *Store) Stats(ctx context.Context, playerID string) (Stats, error) {
	var st Stats
	var wins sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), SUM(human_won) FROM games WHERE player_id=?`, playerID,
	).Scan(&st.Played, &wins); err != nil {
		return Stats{}, err
	}
	st.Wins = int(wins.Int64)

	rows, err := s.db.QueryContext(ctx,
		`SELECT human_won FROM games WHERE player_id=? ORDER BY finished_at DESC`, playerID)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var won bool
		if err := rows.Scan(&won); err != nil {
			return Stats{}, err
		}
		if !won {
			break
		}
		st.Streak++
	}
	return st, rows.Err()
}
