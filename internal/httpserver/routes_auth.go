// internal/httpserver/routes_auth.go
//
// Account endpoints:
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me, /stats/me, /games/mine (require auth)
//
// Signup and login claim any games recorded against the caller's anonymous
// cookie so guest history follows the new session.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/auth"
)

const recentGamesLimit = 50

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionRes struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expiresAt"`
}

// mountAuthRoutes registers authentication + gated routes.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.Group(func(r chi.Router) {
		r.Use(s.authn.Require)
		r.Get("/auth/me", s.handleMe)
		r.Get("/stats/me", s.handleStats)
		r.Get("/games/mine", s.handleMyGames)
	})
}

// handleSignup creates a user, signs a token, sets the cookie and claims anon history.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	u, err := s.users.Create(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username_taken", err)
		return
	case errors.Is(err, auth.ErrInvalidUsername), errors.Is(err, auth.ErrInvalidPassword):
		writeError(w, http.StatusBadRequest, "invalid_signup", err)
		return
	case err != nil:
		log.Error().Err(err).Msg("signup")
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	s.startSession(w, r, http.StatusCreated, u)
}

// handleLogin verifies credentials, sets the cookie and claims anon history.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	u, err := s.users.Authenticate(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, auth.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, "bad_credentials", err)
		return
	case err != nil:
		log.Error().Err(err).Msg("login")
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	s.startSession(w, r, http.StatusOK, u)
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, status int, u *auth.User) {
	tok, exp, err := s.authn.Tokens.Sign(u.ID, u.Username)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed", nil)
		return
	}
	s.authn.Cookies.Set(w, tok, exp)
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		s.claimAnonGames(r.Context(), c.Value, u.ID)
	}
	writeJSON(w, status, sessionRes{ID: u.ID, Username: u.Username, ExpiresAt: exp.UTC().Format(time.RFC3339)})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.authn.Cookies.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.FromContext(r.Context())
	writeJSON(w, http.StatusOK, me)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.FromContext(r.Context())
	u, err := s.users.ByID(r.Context(), me.ID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		log.Error().Err(err).Msg("stats")
		writeError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          u.ID,
		"gamesPlayed": u.GamesPlayed,
		"wins":        u.Wins,
		"streak":      u.Streak,
	})
}

type gameRow struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Guesses    int    `json:"guesses"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// handleMyGames lists the caller's most recent finished rounds.
func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.FromContext(r.Context())
	rows, err := s.db.QueryContext(r.Context(),
		`SELECT id, status, guesses, started_at, COALESCE(finished_at,'')
		 FROM games WHERE user_id=? ORDER BY started_at DESC LIMIT ?`, me.ID, recentGamesLimit)
	if err != nil {
		log.Error().Err(err).Msg("games mine")
		writeError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	defer rows.Close()

	out := []gameRow{}
	for rows.Next() {
		var gr gameRow
		if err := rows.Scan(&gr.ID, &gr.Status, &gr.Guesses, &gr.StartedAt, &gr.FinishedAt); err != nil {
			log.Error().Err(err).Msg("scan game row")
			writeError(w, http.StatusInternalServerError, "db_error", nil)
			return
		}
		out = append(out, gr)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// claimAnonGames transfers anonymous games to a user account after auth.
func (s *Server) claimAnonGames(ctx context.Context, anonID, userID string) {
	res, err := s.db.ExecContext(ctx, `UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	if err != nil {
		log.Warn().Err(err).Msg("claim anon games")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Str("user", userID).Int64("games", n).Msg("claimed anon games")
	}
}
