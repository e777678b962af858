// internal/clue/types.go
//
// Core type definitions for guess feedback.
// Defines:
//   - Classification: per-letter result of a guess (correct/present/absent).
//   - Clue: the ordered classifications for one (target, guess) pair.
//   - Word: a normalized, validated character sequence.

package clue

import (
	"fmt"
	"strings"
)

// Classification represents the evaluation result for a single letter in a guess.
//   - Correct: letter matches the target at this position.
//   - Present: letter occurs elsewhere in the target and is not yet accounted for.
//   - Absent:  letter does not occur, or every occurrence was already claimed.
type Classification uint8

const (
	Absent Classification = iota
	Present
	Correct
)

// String returns the lowercase text form used in JSON and logs.
func (c Classification) String() string {
	switch c {
	case Correct:
		return "correct"
	case Present:
		return "present"
	case Absent:
		return "absent"
	default:
		return fmt.Sprintf("classification(%d)", uint8(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Classification) MarshalText() ([]byte, error) {
	switch c {
	case Correct, Present, Absent:
		return []byte(c.String()), nil
	}
	return nil, fmt.Errorf("clue: unknown classification %d", uint8(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Classification) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "correct":
		*c = Correct
	case "present":
		*c = Present
	case "absent":
		*c = Absent
	default:
		return fmt.Errorf("clue: unknown classification %q", b)
	}
	return nil
}

// Clue is the ordered sequence of classifications for one guess.
type Clue []Classification

// Solved reports whether every position is Correct.
// An empty clue is never solved.
func (c Clue) Solved() bool {
	if len(c) == 0 {
		return false
	}
	for _, x := range c {
		if x != Correct {
			return false
		}
	}
	return true
}

// Count returns how many positions carry classification k.
func (c Clue) Count(k Classification) int {
	n := 0
	for _, x := range c {
		if x == k {
			n++
		}
	}
	return n
}

// Equal reports whether two clues have identical tags at every position.
func (c Clue) Equal(o Clue) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the compact form: G for correct, Y for present, '.' for absent.
func (c Clue) String() string {
	var b strings.Builder
	b.Grow(len(c))
	for _, x := range c {
		switch x {
		case Correct:
			b.WriteByte('G')
		case Present:
			b.WriteByte('Y')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// ParseClue is the inverse of Clue.String.
func ParseClue(s string) (Clue, error) {
	out := make(Clue, 0, len(s))
	for _, r := range s {
		switch r {
		case 'G', 'g':
			out = append(out, Correct)
		case 'Y', 'y':
			out = append(out, Present)
		case '.', '_', '-':
			out = append(out, Absent)
		default:
			return nil, fmt.Errorf("clue: bad tag %q in %q", r, s)
		}
	}
	return out, nil
}
