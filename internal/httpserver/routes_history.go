package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// mountHistory registers GET /history (?limit=n) and GET /history/stats.
func (s *Server) mountHistory(r chi.Router) {
	r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		rows, err := s.history.Recent(r.Context(), playerID(r), limit)
		if err != nil {
			fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	})
	r.Get("/history/stats", func(w http.ResponseWriter, r *http.Request) {
		st, err := s.history.Stats(r.Context(), playerID(r))
		if err != nil {
			fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	})
}
