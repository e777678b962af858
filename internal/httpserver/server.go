// internal/httpserver/server.go
//
// HTTP server wiring for the word game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints (optional auth): POST /game/new, POST /game/guess,
//     GET /game/{id}, GET /game/{id}/hint.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with a principal when a valid token is
//     present; routes still run for guests, keyed by an anonymous cookie.
//   - Finished rounds are written to the games table and user stats bumped on
//     a best-effort basis; failures are logged, not surfaced.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/auth"
	"github.com/robalobadob/wordle/internal/clue"
	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/hint"
	"github.com/robalobadob/wordle/internal/store"
	"github.com/robalobadob/wordle/internal/words"
)

// Server bundles router, live round store, word lists and DB handle.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	store store.Store
	words *words.Lists
	db    *sql.DB
	users *auth.Users
	authn auth.Middleware
	daily *dailyServer
	now   func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithClock replaces time.Now (daily date selection), for tests.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// WithUsers overrides the account repository (tests lower the bcrypt cost).
func WithUsers(u *auth.Users) Option { return func(s *Server) { s.users = u } }

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, lists *words.Lists, db *sql.DB, opts ...Option) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		cfg:   cfg,
		store: st,
		words: lists,
		db:    db,
		users: auth.NewUsers(db),
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.authn = auth.Middleware{
		Tokens:  auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL()),
		Users:   s.users,
		Cookies: auth.Cookies{Name: cfg.CookieName, Secure: cfg.Production},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-go",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/guess", "GET /game/{id}", "/daily/*", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.words.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g, "length": s.words.Length()})
	})

	// Round endpoints: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.authn.Optional)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}", s.handleGetGame)
		r.Get("/game/{id}/hint", s.handleHint)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start serves HTTP on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	res := errorRes{Error: code}
	if err != nil {
		res.Message = err.Error()
	}
	writeJSON(w, status, res)
}

// writeRoundError maps round-driver errors to status codes.
func writeRoundError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, game.ErrLengthMismatch):
		writeError(w, http.StatusUnprocessableEntity, "length_mismatch", err)
	case errors.Is(err, game.ErrInvalidWord):
		writeError(w, http.StatusUnprocessableEntity, "invalid_word", err)
	case errors.Is(err, game.ErrHardMode):
		writeError(w, http.StatusUnprocessableEntity, "hard_mode", err)
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "finished", nil)
	default:
		log.Error().Err(err).Msg("round error")
		writeError(w, http.StatusInternalServerError, "internal", nil)
	}
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Answer   string `json:"answer"` // optional fixed answer (testing)
	HardMode bool   `json:"hardMode"`
}

type newGameRes struct {
	GameID      string `json:"gameId"`
	Length      int    `json:"length"`
	MaxAttempts int    `json:"maxAttempts"`
	HardMode    bool   `json:"hardMode"`
}

func (s *Server) gameOptions(hard bool) []game.Option {
	return []game.Option{
		game.WithDictionary(s.words),
		game.WithMaxAttempts(s.cfg.MaxAttempts),
		game.WithHardMode(hard),
		game.WithClock(s.now),
	}
}

// handleNewGame creates a live round with a random answer unless one is given.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	answer := s.words.Random()
	if req.Answer != "" {
		a, err := clue.ParseWord(req.Answer, s.words.Length())
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid_answer", err)
			return
		}
		answer = string(a)
	}
	g, err := game.New(answer, s.gameOptions(req.HardMode)...)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_answer", err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed", nil)
		return
	}
	// touch the anonymous cookie now so the finishing request can attribute the round
	if _, ok := auth.FromContext(r.Context()); !ok {
		s.ensureAnonID(w, r)
	}
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, Length: g.Target.Len(), MaxAttempts: g.MaxAttempts, HardMode: g.HardMode})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Clue         clue.Clue `json:"clue"`
	State        string    `json:"state"`
	AttemptsUsed int       `json:"attemptsUsed"`
	AttemptsLeft int       `json:"attemptsLeft"`
	Answer       string    `json:"answer,omitempty"`
}

// handleGuess applies a guess to a live round and records the result once terminal.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	var (
		res      guessRes
		finished *game.Game
	)
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		a, err := g.Submit(req.Guess)
		if err != nil {
			return err
		}
		res = guessRes{
			Clue:         a.Clue,
			State:        g.State.String(),
			AttemptsUsed: g.AttemptsUsed(),
			AttemptsLeft: g.AttemptsLeft(),
		}
		if g.State.Terminal() {
			res.Answer = string(g.Target)
			finished = g
		}
		return nil
	})
	if err != nil {
		writeRoundError(w, err)
		return
	}
	if finished != nil {
		s.recordFinished(w, r, finished)
	}
	writeJSON(w, http.StatusOK, res)
}

type gameView struct {
	GameID       string         `json:"gameId"`
	State        string         `json:"state"`
	Length       int            `json:"length"`
	MaxAttempts  int            `json:"maxAttempts"`
	HardMode     bool           `json:"hardMode"`
	AttemptsUsed int            `json:"attemptsUsed"`
	History      []game.Attempt `json:"history"`
	Answer       string         `json:"answer,omitempty"`
}

// handleGetGame returns the round; the answer is revealed only once terminal.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var v gameView
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		v = gameView{
			GameID:       g.ID,
			State:        g.State.String(),
			Length:       g.Target.Len(),
			MaxAttempts:  g.MaxAttempts,
			HardMode:     g.HardMode,
			AttemptsUsed: g.AttemptsUsed(),
			History:      append([]game.Attempt{}, g.History...),
		}
		if g.State.Terminal() {
			v.Answer = string(g.Target)
		}
		return nil
	})
	if err != nil {
		writeRoundError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleHint reports how many answers are still consistent with the history.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var history []game.Attempt
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		history = append([]game.Attempt{}, g.History...)
		return nil
	})
	if err != nil {
		writeRoundError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"remaining": hint.Count(s.words.Answers(), history)})
}

// recordFinished writes the games row and bumps stats (best effort).
func (s *Server) recordFinished(w http.ResponseWriter, r *http.Request, g *game.Game) {
	ctx := r.Context()
	var userID, anonID any
	me, authed := auth.FromContext(ctx)
	if authed {
		userID = me.ID
	} else {
		anonID = s.ensureAnonID(w, r)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO games (id, user_id, anonymous_id, status, guesses, started_at, finished_at)
		 VALUES (?,?,?,?,?,?,?)`,
		g.ID, userID, anonID, g.State.String(), g.AttemptsUsed(),
		g.StartedAt.Format(time.RFC3339), g.FinishedAt.Format(time.RFC3339)); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}
	if authed {
		if err := s.users.RecordResult(ctx, me.ID, g.State == game.Solved); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
}

const anonCookieName = "wordle_anon"

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := auth.GenID()
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	// later reads within this request see the same ID
	r.AddCookie(&http.Cookie{Name: anonCookieName, Value: id})
	return id
}

// playerID is the principal's ID, or the anonymous cookie for guests.
func (s *Server) playerID(w http.ResponseWriter, r *http.Request) (id string, authed bool) {
	if me, ok := auth.FromContext(r.Context()); ok {
		return me.ID, true
	}
	return s.ensureAnonID(w, r), false
}
