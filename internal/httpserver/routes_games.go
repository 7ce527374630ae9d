// internal/httpserver/routes_games.go
//
// Game endpoints. Every /games/{id} route is scoped to the calling player:
// someone else's game answers 404 exactly like a missing one.
//
//   POST   /games                 new game
//   GET    /games                 my games
//   GET    /games/{id}            redacted view
//   DELETE /games/{id}            drop the session
//   GET    /games/{id}/moves      rooms reachable from here
//   POST   /games/{id}/move       {room}
//   POST   /games/{id}/end-turn
//   POST   /games/{id}/suggest    {suspect, weapon, room}
//   POST   /games/{id}/disprove   {card}
//   POST   /games/{id}/accuse     {suspect, weapon, room}
//   POST   /games/{id}/advance    play the current opponent's turn
//   GET    /games/{id}/notebook
//   POST   /games/{id}/autotrack  {on}
//   GET    /games/{id}/events     ?since=n
//   GET    /games/{id}/feed       websocket
//
// Command responses always carry the fresh view under "game".

package httpserver

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/clue/internal/daily"
	"github.com/robalobadob/clue/internal/feed"
	"github.com/robalobadob/clue/internal/game"
	"github.com/robalobadob/clue/internal/history"
	"github.com/robalobadob/clue/internal/store"
)

func (s *Server) mountGames(r chi.Router) {
	r.Post("/games", s.handleNewGame)
	r.Get("/games", s.handleListGames)
	r.Get("/games/{id}", s.withGame(func(w http.ResponseWriter, r *http.Request, sess *store.Session) {
		writeJSON(w, http.StatusOK, sess.Game.View())
	}))
	r.Delete("/games/{id}", s.handleDeleteGame)
	r.Get("/games/{id}/moves", s.withGame(func(w http.ResponseWriter, r *http.Request, sess *store.Session) {
		writeJSON(w, http.StatusOK, map[string]any{"room": sess.Game.Human.Room, "moves": sess.Game.ValidMoves()})
	}))
	r.Post("/games/{id}/move", s.command(s.move))
	r.Post("/games/{id}/end-turn", s.command(s.endTurn))
	r.Post("/games/{id}/suggest", s.command(s.suggest))
	r.Post("/games/{id}/disprove", s.command(s.disprove))
	r.Post("/games/{id}/accuse", s.command(s.accuse))
	r.Post("/games/{id}/advance", s.command(s.advance))
	r.Get("/games/{id}/notebook", s.withGame(func(w http.ResponseWriter, r *http.Request, sess *store.Session) {
		writeJSON(w, http.StatusOK, notebookRes(sess.Game))
	}))
	r.Post("/games/{id}/autotrack", s.withGame(s.handleAutoTrack))
	r.Get("/games/{id}/events", s.withGame(s.handleEvents))
}

// ------------------------------ payloads -----------------------------------

type rulesReq struct {
	SuggestChance *float64 `json:"suggestChance" validate:"omitempty,gte=0,lte=1"`
	AccuseChance  *float64 `json:"accuseChance" validate:"omitempty,gte=0,lte=1"`
}

type newGameReq struct {
	Opponents  *int      `json:"opponents"`
	Difficulty string    `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	Seed       *int64    `json:"seed"`
	Rules      *rulesReq `json:"rules"`
}

type moveReq struct {
	Room string `json:"room" validate:"required"`
}

type tripleReq struct {
	Suspect string `json:"suspect" validate:"required"`
	Weapon  string `json:"weapon" validate:"required"`
	Room    string `json:"room" validate:"required"`
}

func (t tripleReq) triple() game.Triple {
	return game.Triple{Suspect: game.Card(t.Suspect), Weapon: game.Card(t.Weapon), Room: game.Card(t.Room)}
}

type disproveReq struct {
	Card string `json:"card" validate:"required"`
}

type autoTrackReq struct {
	On *bool `json:"on" validate:"required"`
}

type gameSummary struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	Daily     string     `json:"daily,omitempty"`
	Opponents int        `json:"opponents"`
	Phase     game.Phase `json:"phase"`
	Round     int        `json:"round"`
}

// ------------------------------ lifecycle ----------------------------------

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := s.decode(r, &req); err != nil {
		fail(w, r, fmt.Errorf("%w: %w", game.ErrInvalidConfiguration, err))
		return
	}

	opts := game.Options{Opponents: s.cfg.DefaultOpponents, Difficulty: game.Difficulty(req.Difficulty)}
	if req.Opponents != nil {
		opts.Opponents = *req.Opponents
	}
	if req.Rules != nil {
		rules := game.ClassicRules()
		if req.Rules.SuggestChance != nil {
			rules.SuggestChance = *req.Rules.SuggestChance
		}
		if req.Rules.AccuseChance != nil {
			rules.AccuseChance = *req.Rules.AccuseChance
		}
		opts.Rules = &rules
	}
	seed := rand.Int63()
	if req.Seed != nil {
		seed = *req.Seed
	}

	sess, err := s.createSession(r.Context(), playerID(r), seed, opts, "")
	if err != nil {
		fail(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Str("gameId", sess.ID).Int("opponents", opts.Opponents).Msg("new game")
	writeJSON(w, http.StatusCreated, map[string]any{"game": sess.Game.View()})
}

// createSession deals a game from seed and registers it.
func (s *Server) createSession(ctx context.Context, owner string, seed int64, opts game.Options, dailyDate string) (*store.Session, error) {
	g, err := game.New(opts, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	sess := store.NewSession(owner, seed, g)
	sess.Daily = dailyDate
	sess.CreatedAt = s.now().UTC()
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.List(r.Context(), playerID(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	out := make([]gameSummary, 0, len(sessions))
	for _, sess := range sessions {
		sess.Lock()
		out = append(out, gameSummary{
			ID:        sess.ID,
			CreatedAt: sess.CreatedAt,
			Daily:     sess.Daily,
			Opponents: len(sess.Game.Opponents),
			Phase:     sess.Game.Turn.Phase,
			Round:     sess.Game.Turn.Round,
		})
		sess.Unlock()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.ownSession(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		fail(w, r, err)
		return
	}
	s.hub.Close(sess.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ------------------------------ plumbing -----------------------------------

// ownSession loads {id} and checks it belongs to the caller.
func (s *Server) ownSession(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err == nil && sess.Owner != playerID(r) {
		err = store.ErrGameNotFound
	}
	if err != nil {
		fail(w, r, err)
		return nil, false
	}
	return sess, true
}

// withGame runs fn with the caller's session locked.
func (s *Server) withGame(fn func(http.ResponseWriter, *http.Request, *store.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.ownSession(w, r)
		if !ok {
			return
		}
		sess.Lock()
		defer sess.Unlock()
		fn(w, r, sess)
	}
}

// commandFunc applies one engine command and returns extra response fields.
type commandFunc func(r *http.Request, sess *store.Session) (map[string]any, error)

// command wraps a commandFunc: lock, apply, publish new events, record a
// finished game, respond with the result plus the fresh view.
func (s *Server) command(fn commandFunc) http.HandlerFunc {
	return s.withGame(func(w http.ResponseWriter, r *http.Request, sess *store.Session) {
		from := len(sess.Game.Log)
		res, err := fn(r, sess)
		if err != nil {
			fail(w, r, err)
			return
		}
		s.afterCommand(r.Context(), sess, from)
		if res == nil {
			res = map[string]any{}
		}
		res["game"] = sess.Game.View()
		writeJSON(w, http.StatusOK, res)
	})
}

// afterCommand pushes the events since from to feed subscribers and, the
// first time the game is seen finished, writes its result.
func (s *Server) afterCommand(ctx context.Context, sess *store.Session, from int) {
	s.hub.Publish(sess.ID, sess.Game.Events(from))

	if sess.Recorded || !sess.Game.Finished() {
		return
	}
	res, ok := history.FromGame(sess.Owner, sess.Daily, sess.CreatedAt, sess.Game)
	if !ok {
		return
	}
	sess.Recorded = true
	l := log.Ctx(ctx).With().Str("gameId", sess.ID).Logger()
	if err := s.history.Record(ctx, res); err != nil {
		l.Warn().Err(err).Msg("record history")
	}
	if sess.Daily != "" {
		err := s.daily.InsertResult(ctx, daily.Result{
			PlayerID:  sess.Owner,
			Date:      sess.Daily,
			GameID:    sess.ID,
			Won:       res.HumanWon,
			Rounds:    res.Rounds,
			ElapsedMs: res.FinishedAt.Sub(res.StartedAt).Milliseconds(),
		})
		if err != nil {
			l.Warn().Err(err).Msg("record daily result")
		}
	}
	l.Info().Bool("humanWon", res.HumanWon).Str("winner", res.Winner).Int("rounds", res.Rounds).Msg("game over")
}

// ------------------------------ commands -----------------------------------

func (s *Server) move(r *http.Request, sess *store.Session) (map[string]any, error) {
	var req moveReq
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}
	return nil, sess.Game.Move(game.Card(req.Room))
}

func (s *Server) endTurn(r *http.Request, sess *store.Session) (map[string]any, error) {
	return nil, sess.Game.EndTurn()
}

func (s *Server) suggest(r *http.Request, sess *store.Session) (map[string]any, error) {
	var req tripleReq
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}
	d, err := sess.Game.Suggest(req.triple())
	if err != nil {
		return nil, err
	}
	return map[string]any{"disproof": d}, nil
}

func (s *Server) disprove(r *http.Request, sess *store.Session) (map[string]any, error) {
	var req disproveReq
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}
	return nil, sess.Game.ResolveHumanDisproof(game.Card(req.Card))
}

func (s *Server) accuse(r *http.Request, sess *store.Session) (map[string]any, error) {
	var req tripleReq
	if err := s.decode(r, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrInvalidAccusationFormat, err)
	}
	a, err := sess.Game.Accuse(req.triple())
	if err != nil {
		return nil, err
	}
	return map[string]any{"accusation": a}, nil
}

func (s *Server) advance(r *http.Request, sess *store.Session) (map[string]any, error) {
	rep, err := sess.Game.AdvanceOpponentTurn(sess.RNG)
	if err != nil {
		return nil, err
	}
	return map[string]any{"turn": rep}, nil
}

// ------------------------------ notebook -----------------------------------

func notebookRes(g *game.Game) map[string]any {
	return map[string]any{"autoTrack": g.AutoTrack, "entries": g.Notebook()}
}

func (s *Server) handleAutoTrack(w http.ResponseWriter, r *http.Request, sess *store.Session) {
	var req autoTrackReq
	if err := s.decode(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	sess.Game.SetAutoTrack(*req.On)
	writeJSON(w, http.StatusOK, notebookRes(sess.Game))
}

// ------------------------------- events ------------------------------------

func parseSince(r *http.Request) (int, error) {
	v := r.URL.Query().Get("since")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: since must be a non-negative integer", errInvalidRequest)
	}
	return n, nil
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, sess *store.Session) {
	since, err := parseSince(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events":  sess.Game.Events(since),
		"lastSeq": len(sess.Game.Log),
	})
}

// handleFeed upgrades to a websocket and streams the game's events.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	since, err := parseSince(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	sess, ok := s.ownSession(w, r)
	if !ok {
		return
	}
	up := feed.Upgrader(s.cfg.ClientOrigin)
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("ws upgrade")
		return
	}
	s.hub.Stream(conn, sess.ID, func() []game.Event {
		sess.Lock()
		defer sess.Unlock()
		return sess.Game.Events(since)
	}, *hlog.FromRequest(r))
}
