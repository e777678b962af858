// Package hint narrows a candidate list to the words still consistent with
// the feedback a round has produced so far.
package hint

import (
	"github.com/robalobadob/wordle/internal/clue"
	"github.com/robalobadob/wordle/internal/game"
)

// Consistent reports whether candidate, had it been the target, would have
// produced exactly the recorded clue for every attempt.
func Consistent(candidate string, history []game.Attempt) bool {
	w := clue.Word(candidate)
	for _, a := range history {
		c, err := clue.Evaluate(w, a.Guess)
		if err != nil || !c.Equal(a.Clue) {
			return false
		}
	}
	return true
}

// Remaining filters candidates, preserving order.
func Remaining(candidates []string, history []game.Attempt) []string {
	out := make([]string, 0, len(candidates))
	for _, w := range candidates {
		if Consistent(w, history) {
			out = append(out, w)
		}
	}
	return out
}

// Count is len(Remaining(...)) without allocating the result.
func Count(candidates []string, history []game.Attempt) int {
	n := 0
	for _, w := range candidates {
		if Consistent(w, history) {
			n++
		}
	}
	return n
}
