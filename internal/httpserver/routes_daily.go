// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily case.
//   - POST /daily/new         → start today's case (or resume the live one)
//   - GET  /daily/leaderboard → today's winners (or ?date=YYYY-MM-DD)
//
// Everyone gets the same deal on a given UTC date: the seed comes from
// daily.Seed(date, DAILY_SALT). A player's first finished daily game is the
// one that counts; after that /daily/new answers 409.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/clue/internal/daily"
	"github.com/robalobadob/clue/internal/game"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Post("/daily/new", s.handleDailyNew)
	r.Get("/daily/leaderboard", s.handleDailyLeaderboard)
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	now := s.now().UTC()
	date := daily.DateKey(now)
	player := playerID(r)

	played, err := s.daily.AlreadyPlayed(r.Context(), player, date)
	if err != nil {
		fail(w, r, err)
		return
	}
	if played {
		writeError(w, http.StatusConflict, "already_played", "today's case is already closed")
		return
	}

	// resume a live daily session
	sessions, err := s.store.List(r.Context(), player)
	if err != nil {
		fail(w, r, err)
		return
	}
	for _, sess := range sessions {
		if sess.Daily != date {
			continue
		}
		sess.Lock()
		finished := sess.Game.Finished()
		view := sess.Game.View()
		sess.Unlock()
		if !finished {
			writeJSON(w, http.StatusOK, map[string]any{"date": date, "game": view})
			return
		}
	}

	opts := game.Options{Opponents: s.cfg.DefaultOpponents}
	sess, err := s.createSession(r.Context(), player, daily.Seed(now, s.cfg.DailySalt), opts, date)
	if err != nil {
		fail(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Str("gameId", sess.ID).Str("date", date).Msg("daily case")
	writeJSON(w, http.StatusCreated, map[string]any{"date": date, "game": sess.Game.View()})
}

func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "rows": rows})
}
