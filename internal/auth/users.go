// internal/auth/users.go
//
// User accounts backed by the users table.
// Responsibilities:
//   - Signup validation, bcrypt hashing, case-insensitive unique usernames.
//   - Login verification.
//   - Per-user counters (games played, wins, streak) updated in a transaction.

package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken   = errors.New("username taken")
	ErrInvalidUsername = errors.New("username must be 3-24 letters, numbers or underscores")
	ErrInvalidPassword = errors.New("password must be 8-100 chars")
	ErrBadCredentials  = errors.New("invalid username or password")
	ErrNotFound        = errors.New("user not found")
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	GamesPlayed  int       `json:"gamesPlayed"`
	Wins         int       `json:"wins"`
	Streak       int       `json:"streak"`
}

// Users is the account repository.
type Users struct {
	db   *sql.DB
	cost int
}

// NewUsers returns a repository hashing with bcrypt.DefaultCost.
func NewUsers(db *sql.DB) *Users { return &Users{db: db, cost: bcrypt.DefaultCost} }

// WithCost returns a copy using a different bcrypt cost (tests use bcrypt.MinCost).
func (u *Users) WithCost(cost int) *Users { return &Users{db: u.db, cost: cost} }

func normalizeUsername(u string) string { return strings.TrimSpace(u) }

func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return ErrInvalidUsername
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ErrInvalidUsername
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return ErrInvalidPassword
	}
	return nil
}

// Create validates input, checks uniqueness, hashes the password and inserts a user.
func (u *Users) Create(ctx context.Context, username, pw string) (*User, error) {
	username = normalizeUsername(username)
	if err := validateSignup(username, pw); err != nil {
		return nil, err
	}
	var exists int
	err := u.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE lower(username)=lower(?)`, username).Scan(&exists)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), u.cost)
	if err != nil {
		return nil, err
	}
	usr := &User{
		ID:           GenID(),
		Username:     username,
		PasswordHash: string(h),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := u.insert(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// insert writes usr. A UNIQUE violation, from a signup that raced past the
// existence check, is reported as ErrUsernameTaken.
func (u *Users) insert(ctx context.Context, usr *User) error {
	_, err := u.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		usr.ID, usr.Username, usr.PasswordHash, usr.CreatedAt.Format(time.RFC3339))
	var se sqlite3.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique:
		return ErrUsernameTaken
	default:
		return fmt.Errorf("insert user: %w", err)
	}
}

// Authenticate returns the user if the password matches, else ErrBadCredentials.
func (u *Users) Authenticate(ctx context.Context, username, pw string) (*User, error) {
	usr, err := u.ByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(pw)) != nil {
		return nil, ErrBadCredentials
	}
	return usr, nil
}

func (u *Users) ByUsername(ctx context.Context, username string) (*User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                                  FROM users WHERE lower(username)=lower(?)`, username)
	return scanUser(row)
}

func (u *Users) ByID(ctx context.Context, id string) (*User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                                  FROM users WHERE id=?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.GamesPlayed, &u.Wins, &u.Streak); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// RecordResult increments games played and updates wins and streak.
func (u *Users) RecordResult(ctx context.Context, userID string, won bool) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var gp, wins, streak int
	if err := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID).
		Scan(&gp, &wins, &streak); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`,
		gp, wins, streak, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// GenID creates a 22-char URL-safe, crypto-random identifier (no padding).
func GenID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
