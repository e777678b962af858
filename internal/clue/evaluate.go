// internal/clue/evaluate.go
//
// Two-pass feedback algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Pool the target letters at every non-exact position.
//
// Pass 2:
//   - For each unmarked guess letter: if the pool still holds that letter,
//     mark Present and take one occurrence out; otherwise Absent.
//
// Exact matches are reserved before any Present can draw from the pool, so a
// repeated letter early in the guess cannot steal the slot of a later exact hit.

package clue

import "fmt"

// Evaluate scores guess against target. Both are compared rune by rune and
// must be the same length; casing is the caller's concern.
func Evaluate(target, guess Word) (Clue, error) {
	t, g := []rune(string(target)), []rune(string(guess))
	if len(t) != len(g) {
		return nil, fmt.Errorf("%w: target has %d letters, guess has %d",
			ErrLengthMismatch, len(t), len(g))
	}

	out := make(Clue, len(g))
	pool := make(map[rune]int, len(t))

	for i := range g {
		if g[i] == t[i] {
			out[i] = Correct
		} else {
			pool[t[i]]++
		}
	}

	for i := range g {
		if out[i] == Correct {
			continue
		}
		if pool[g[i]] > 0 {
			out[i] = Present
			pool[g[i]]--
		} else {
			out[i] = Absent
		}
	}
	return out, nil
}
