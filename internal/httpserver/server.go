// internal/httpserver/server.go
//
// HTTP server wiring for the Clue backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts,
//     JSON, CORS).
//   - Public endpoints: "/", "/health", "/board".
//   - Game endpoints under /games (routes_games.go), live feed included.
//   - Daily case under /daily (routes_daily.go), history under /history.
//   - Player identity: a signed cookie issued on first contact (player.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Every error body is {"error":"<code>","message":"..."}.
//   - The websocket feed is mounted outside the timeout group.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/clue/internal/config"
	"github.com/robalobadob/clue/internal/daily"
	"github.com/robalobadob/clue/internal/feed"
	"github.com/robalobadob/clue/internal/game"
	"github.com/robalobadob/clue/internal/history"
	"github.com/robalobadob/clue/internal/store"
)

// Server bundles router, session store, history and the live feed.
type Server struct {
	r        *chi.Mux
	cfg      *config.Config
	store    store.Store
	history  *history.Store
	daily    *daily.Store
	hub      *feed.Hub
	validate *validator.Validate
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// db must already be migrated (history.Open).
func New(cfg *config.Config, st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		store:    st,
		history:  history.NewStore(db),
		daily:    daily.NewStore(db),
		hub:      feed.NewHub(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger)) // request-scoped logger
	s.r.Use(requestIDField)
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(jsonContentType) // default JSON responses
	s.r.Use(s.cors)          // credentials-friendly CORS
	s.r.Use(s.withPlayer)    // player cookie

	// websocket feed: long-lived, no handler timeout
	s.r.Get("/games/{id}/feed", s.handleFeed)

	s.r.Group(func(r chi.Router) {
		timeout := time.Duration(cfg.RequestTimeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		r.Use(chimw.Timeout(timeout)) // bound handler time

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service":   "clue-go",
				"endpoints": []string{"/health", "/board", "/me", "/games", "/daily/new", "/history"},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Get("/board", s.handleBoard)
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"playerId": playerID(r)})
		})

		s.mountGames(r)
		s.mountDaily(r)
		s.mountHistory(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestIDField copies chi's request id into the request logger.
func requestIDField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}

// errInvalidRequest marks malformed JSON or failed payload validation.
var errInvalidRequest = errors.New("invalid request")

// decode reads a JSON body into v and validates it. An empty body leaves v
// untouched.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}
	return nil
}

// errorKinds maps engine errors to status and code. Order matters: the
// specific kinds wrap ErrInvalidInput and must match first.
var errorKinds = []struct {
	err    error
	status int
	code   string
}{
	{store.ErrGameNotFound, http.StatusNotFound, "not_found"},
	{game.ErrInvalidMove, http.StatusBadRequest, "invalid_move"},
	{game.ErrInvalidSuggestion, http.StatusBadRequest, "invalid_suggestion"},
	{game.ErrInvalidAccusationFormat, http.StatusBadRequest, "invalid_accusation_format"},
	{game.ErrInvalidDisproofCard, http.StatusBadRequest, "invalid_disproof_card"},
	{game.ErrInvalidConfiguration, http.StatusBadRequest, "invalid_configuration"},
	{game.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{errInvalidRequest, http.StatusBadRequest, "invalid_request"},
	{game.ErrNotYourTurn, http.StatusConflict, "not_your_turn"},
	{game.ErrGameOver, http.StatusConflict, "game_over"},
	{game.ErrNoPendingDisproof, http.StatusConflict, "no_pending_disproof"},
}

// fail writes err as a JSON error body.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			writeError(w, k.status, k.code, err.Error())
			return
		}
	}
	hlog.FromRequest(r).Error().Err(err).Msg("unhandled error")
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"map":      game.Board(),
		"start":    game.StartingRoom,
		"suspects": game.Suspects,
		"weapons":  game.Weapons,
		"rooms":    game.Rooms,
	})
}
