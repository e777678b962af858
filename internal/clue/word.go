package clue

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrLengthMismatch is returned when a guess and its target differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrNotAlpha is returned by ParseWord for anything outside a–z.
	ErrNotAlpha = errors.New("word must contain letters a-z only")
)

// Word is a lowercase character sequence. Build one with ParseWord so the
// normalization policy is applied at the boundary.
type Word string

// Normalize trims surrounding whitespace and lowercase-folds s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseWord normalizes s and checks it is exactly length letters long.
// A length of 0 skips the length check.
func ParseWord(s string, length int) (Word, error) {
	w := Normalize(s)
	if length > 0 && utf8.RuneCountInString(w) != length {
		return "", fmt.Errorf("%w: %q has %d letters, want %d",
			ErrLengthMismatch, w, utf8.RuneCountInString(w), length)
	}
	if w == "" || !IsAlpha(w) {
		return "", fmt.Errorf("%w: %q", ErrNotAlpha, w)
	}
	return Word(w), nil
}

// Len returns the number of letters.
func (w Word) Len() int { return utf8.RuneCountInString(string(w)) }

func (w Word) String() string { return string(w) }

// IsAlpha reports whether s consists only of lowercase a–z.
func IsAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
