// internal/daily/store.go
//
// Daily case results. One row per player per date: the first finished
// daily game counts, later attempts are ignored.

package daily

import (
	"context"
	"database/sql"
)

type Result struct {
	PlayerID  string `json:"playerId"`
	Date      string `json:"date"`
	GameID    string `json:"gameId"`
	Won       bool   `json:"won"`
	Rounds    int    `json:"rounds"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=?",
		playerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(player_id, date, game_id, won, rounds, elapsed_ms)
		 VALUES(?,?,?,?,?,?)`, r.PlayerID, r.Date, r.GameID, r.Won, r.Rounds, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard line. Player ids are truncated for display.
type LBRow struct {
	Player    string `json:"player"`
	Rounds    int    `json:"rounds"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Leaderboard lists the date's winners: fewest rounds, then fastest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, rounds, elapsed_ms
		   FROM daily_results
		  WHERE date=? AND won=1
		  ORDER BY rounds ASC, elapsed_ms ASC, created_at ASC
		  LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Player, &r.Rounds, &r.ElapsedMs); err != nil {
			return nil, err
		}
		if len(r.Player) > 8 {
			r.Player = r.Player[:8]
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
