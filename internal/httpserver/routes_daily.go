// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start a daily round (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's daily round
//   - GET  /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//
// Each player can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play only: a session is dropped once
// its result row is written, when its date is no longer today, or when it has
// been idle longer than the round TTL. Word selection is HMAC(salt, date).

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/clue"
	"github.com/robalobadob/wordle/internal/daily"
	"github.com/robalobadob/wordle/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	ttl      time.Duration // idle eviction; zero keeps sessions until the day ends
	mu       sync.Mutex    // guards sessions and the rounds inside them
	sessions map[string]*dailySession
}

// dailySession is an in-progress daily round.
type dailySession struct {
	game      *game.Game
	date      string
	wordIndex int
	touched   time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	ttl, _ := s.cfg.TTL() // validated by config.Load
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		ttl:      ttl,
		sessions: make(map[string]*dailySession),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key, deterministic word index, and answer.
func (d *dailyServer) today() (date string, idx int, answer string) {
	now := d.srv.now()
	date = daily.DateKey(now)
	n := len(d.srv.words.Answers())
	idx = daily.WordIndex(now, d.salt, n)
	return date, idx, d.srv.words.Answer(idx)
}

// -----------------------------------------------------------------------------
// /daily/new

type dailyNewRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
//   - If the player already has a DB row for today → Played=true.
//   - Otherwise create/reuse an in-memory session and return its GameID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, _ := d.srv.playerID(w, r)
	date, idx, answer := d.today()

	played, err := d.store.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		log.Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	now := d.srv.now()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sweepLocked(date, now)
	if sess, ok := d.sessions[key]; ok {
		sess.touched = now
		writeJSON(w, http.StatusOK, dailyNewRes{GameID: sess.game.ID, Date: date})
		return
	}
	g, err := game.New(answer, d.srv.gameOptions(false)...)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("daily answer")
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	d.sessions[key] = &dailySession{game: g, date: date, wordIndex: idx, touched: now}
	writeJSON(w, http.StatusOK, dailyNewRes{GameID: g.ID, Date: date})
}

// -----------------------------------------------------------------------------
// /daily/guess

type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

type dailyGuessRes struct {
	Clue    clue.Clue `json:"clue"`
	State   string    `json:"state"`
	Guesses int       `json:"guesses"`
}

// handleGuess validates and applies a guess for today's daily session.
// The result row is written when the round becomes terminal.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid, authed := d.srv.playerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	date, _, _ := d.today()
	key := uid + "|" + date

	d.mu.Lock()
	defer d.mu.Unlock()
	sess, ok := d.sessions[key]
	if !ok || p.GameID == "" || sess.game.ID != p.GameID {
		writeError(w, http.StatusConflict, "no_session", nil)
		return
	}
	sess.touched = d.srv.now()
	g := sess.game
	a, err := g.Submit(p.Word)
	if err != nil {
		writeRoundError(w, err)
		return
	}
	state, used := g.State, g.AttemptsUsed()

	if state.Terminal() {
		// the result row blocks replays from here on
		delete(d.sessions, key)
		if err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      date,
			WordIndex: sess.wordIndex,
			Guesses:   used,
			ElapsedMs: int(g.Elapsed().Milliseconds()),
			Solved:    state == game.Solved,
		}); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
		if authed {
			if err := d.srv.users.RecordResult(r.Context(), uid, state == game.Solved); err != nil {
				log.Warn().Err(err).Str("user", uid).Msg("bump stats")
			}
		}
	}
	writeJSON(w, http.StatusOK, dailyGuessRes{Clue: a.Clue, State: state.String(), Guesses: used})
}

// sweepLocked drops sessions from earlier days and sessions idle past the TTL.
// Caller holds d.mu.
func (d *dailyServer) sweepLocked(today string, now time.Time) {
	for k, sess := range d.sessions {
		if sess.date != today || (d.ttl > 0 && now.Sub(sess.touched) > d.ttl) {
			delete(d.sessions, k)
		}
	}
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.today()
	}
	limit := daily.DefaultLeaderboardLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "bad_limit", nil)
			return
		}
		limit = n
	}
	rows, err := d.store.Leaderboard(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
