// internal/game/types.go
//
// Core type definitions for the round driver.
// Defines:
//   - State: AwaitingGuess → Solved | Exhausted.
//   - Attempt: one accepted (guess, clue) pair.
//   - Game: state for a single in-progress or finished round.
//   - Dictionary: the word-list membership collaborator.

package game

import (
	"fmt"
	"time"

	"github.com/robalobadob/wordle/internal/clue"
)

// State is the round's position in its lifecycle.
type State uint8

const (
	AwaitingGuess State = iota
	Solved
	Exhausted
)

func (s State) String() string {
	switch s {
	case AwaitingGuess:
		return "awaiting_guess"
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool { return s == Solved || s == Exhausted }

// Dictionary answers word-list membership for a normalized word.
type Dictionary interface {
	Contains(word string) bool
}

// Attempt is one accepted guess and its feedback.
type Attempt struct {
	Guess clue.Word `json:"guess"`
	Clue  clue.Clue `json:"clue"`
}

// Game holds the state of a single round.
type Game struct {
	ID          string    // Unique round identifier (uuid).
	Target      clue.Word // The solution word (always lowercase).
	MaxAttempts int       // Maximum number of guesses allowed (typically 6).
	HardMode    bool      // Revealed hints must be reused.
	History     []Attempt // Accepted guesses, oldest first.
	State       State     // Current lifecycle state.
	StartedAt   time.Time // When the round was created.
	FinishedAt  time.Time // Zero until the round is terminal.

	dict Dictionary
	now  func() time.Time
}
