// internal/game/engine.go
//
// Round driver for a single word-guessing session.
// Responsibilities:
//   - Create rounds with a validated target and a bounded attempt budget.
//   - Validate guesses (length, alphabet, dictionary, hard-mode rules).
//   - Score guesses through clue.Evaluate.
//   - Track state transitions: awaiting_guess → solved/exhausted.
//
// Rejected guesses never consume an attempt.

package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/internal/clue"
)

const DefaultMaxAttempts = 6

var (
	// ErrLengthMismatch is clue.ErrLengthMismatch, re-exported for callers of Submit.
	ErrLengthMismatch = clue.ErrLengthMismatch
	ErrInvalidWord    = errors.New("invalid word")
	ErrHardMode       = errors.New("hard mode violation")
	ErrFinished       = errors.New("round finished")
)

// Option configures a Game at construction.
type Option func(*Game)

// WithDictionary sets the membership check for guesses. Nil accepts any
// alphabetic word.
func WithDictionary(d Dictionary) Option { return func(g *Game) { g.dict = d } }

// WithMaxAttempts overrides the default of six attempts.
func WithMaxAttempts(n int) Option { return func(g *Game) { g.MaxAttempts = n } }

// WithHardMode requires later guesses to reuse revealed hints.
func WithHardMode(on bool) Option { return func(g *Game) { g.HardMode = on } }

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option { return func(g *Game) { g.now = now } }

// New constructs a round for target. The target is normalized and must be
// alphabetic; it does not have to be in the dictionary.
func New(target string, opts ...Option) (*Game, error) {
	t, err := clue.ParseWord(target, 0)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	g := &Game{
		ID:          uuid.NewString(),
		Target:      t,
		MaxAttempts: DefaultMaxAttempts,
		History:     []Attempt{},
		now:         time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	if g.MaxAttempts <= 0 {
		return nil, fmt.Errorf("max attempts must be positive, got %d", g.MaxAttempts)
	}
	g.StartedAt = g.now().UTC()
	return g, nil
}

// Submit validates and scores a guess, mutating the round.
//
// Validation order:
//   - Round must not be terminal (ErrFinished).
//   - Guess must have the target's length (ErrLengthMismatch).
//   - Guess must be letters a–z and in the dictionary (ErrInvalidWord).
//   - In hard mode, guess must honour revealed hints (ErrHardMode).
func (g *Game) Submit(guess string) (Attempt, error) {
	if g.State.Terminal() {
		return Attempt{}, ErrFinished
	}
	w, err := clue.ParseWord(guess, g.Target.Len())
	switch {
	case errors.Is(err, clue.ErrLengthMismatch):
		return Attempt{}, err
	case err != nil:
		return Attempt{}, fmt.Errorf("%w: %v", ErrInvalidWord, err)
	}
	if g.dict != nil && !g.dict.Contains(string(w)) {
		return Attempt{}, fmt.Errorf("%w: %q is not in the word list", ErrInvalidWord, w)
	}
	if g.HardMode {
		if err := checkHardMode(g.History, w); err != nil {
			return Attempt{}, err
		}
	}

	c, err := clue.Evaluate(g.Target, w)
	if err != nil {
		return Attempt{}, err
	}
	a := Attempt{Guess: w, Clue: c}
	g.History = append(g.History, a)

	if w == g.Target {
		g.finish(Solved)
	} else if len(g.History) >= g.MaxAttempts {
		g.finish(Exhausted)
	}
	return a, nil
}

func (g *Game) finish(s State) {
	g.State = s
	if g.now == nil {
		g.now = time.Now
	}
	g.FinishedAt = g.now().UTC()
}

// AttemptsUsed is the number of accepted guesses.
func (g *Game) AttemptsUsed() int { return len(g.History) }

// AttemptsLeft is the remaining budget; zero once terminal.
func (g *Game) AttemptsLeft() int {
	if g.State.Terminal() {
		return 0
	}
	return g.MaxAttempts - len(g.History)
}

// Elapsed is the time from start to finish, or to now while in progress.
func (g *Game) Elapsed() time.Duration {
	if !g.FinishedAt.IsZero() {
		return g.FinishedAt.Sub(g.StartedAt)
	}
	if g.now == nil {
		return time.Since(g.StartedAt)
	}
	return g.now().UTC().Sub(g.StartedAt)
}
