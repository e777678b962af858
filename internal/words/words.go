// internal/words/words.go
//
// Word list management for the round driver.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the lists
//     embedded in the assets package.
//   - Maintain sets for quick lookups (answers only, answers ∪ guesses).
//   - Supply Random, Contains, IsAnswer and Stats.
//
// Resolution rules (Load):
//   1. AnswersFile and AllowedFile both set: each is read from its file.
//   2. Only AllowedFile set: that file is used for both lists.
//   3. Neither set: embedded defaults.
//   AnswersFile alone is treated like case 1 with the embedded allowed list.
//
// File format: one word per line; blank lines and lines starting with '#'
// are skipped; words are lowercase-folded and only words of the configured
// length made of a–z are kept.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/robalobadob/wordle/assets"
	"github.com/robalobadob/wordle/internal/clue"
)

const DefaultLength = 5

var ErrEmpty = errors.New("words: answers list is empty")

// Options selects where lists come from.
type Options struct {
	AnswersFile string
	AllowedFile string
	Length      int // defaults to DefaultLength
}

// Lists is an immutable pair of answer and allowed-guess lists.
// Safe for concurrent use.
type Lists struct {
	length     int
	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{} // answers ∪ guesses
}

// Load resolves and reads both lists. Returns ErrEmpty if no answers survive
// filtering.
func Load(opts Options) (*Lists, error) {
	n := opts.Length
	if n <= 0 {
		n = DefaultLength
	}

	var ansList, allowList []string
	var err error
	switch {
	case opts.AnswersFile != "" && opts.AllowedFile != "":
		if ansList, err = readWordFile(opts.AnswersFile, n); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(opts.AllowedFile, n); err != nil {
			return nil, err
		}
	case opts.AllowedFile != "":
		if allowList, err = readWordFile(opts.AllowedFile, n); err != nil {
			return nil, err
		}
		ansList = allowList
	case opts.AnswersFile != "":
		if ansList, err = readWordFile(opts.AnswersFile, n); err != nil {
			return nil, err
		}
		if allowList, err = readEmbedded(assets.AllowedFile, n); err != nil {
			return nil, err
		}
	default:
		if ansList, err = readEmbedded(assets.AnswersFile, n); err != nil {
			return nil, err
		}
		if allowList, err = readEmbedded(assets.AllowedFile, n); err != nil {
			return nil, err
		}
	}
	return New(n, ansList, allowList)
}

// New builds Lists from in-memory slices. Inputs are normalized and filtered
// the same way file contents are. Answers are always allowed.
func New(length int, answers, allowed []string) (*Lists, error) {
	l := &Lists{
		length:     length,
		answersSet: make(map[string]struct{}, len(answers)),
		allowedSet: make(map[string]struct{}, len(answers)+len(allowed)),
	}
	for _, w := range answers {
		w, ok := keep(w, length)
		if !ok {
			continue
		}
		if _, dup := l.answersSet[w]; dup {
			continue
		}
		l.answersSet[w] = struct{}{}
		l.allowedSet[w] = struct{}{}
		l.answers = append(l.answers, w)
	}
	for _, w := range allowed {
		if w, ok := keep(w, length); ok {
			l.allowedSet[w] = struct{}{}
		}
	}
	if len(l.answers) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

func readWordFile(path string, length int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	return readLines(f, length)
}

func readEmbedded(name string, length int) ([]string, error) {
	f, err := assets.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("words: embedded %s: %w", name, err)
	}
	defer f.Close()
	return readLines(f, length)
}

// readLines reads one word per line, keeping only valid words of length.
func readLines(r io.Reader, length int) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if w, ok := keep(line, length); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

func keep(w string, length int) (string, bool) {
	w = clue.Normalize(w)
	if len(w) != length || !clue.IsAlpha(w) {
		return "", false
	}
	return w, true
}

// Length is the word length every list entry has.
func (l *Lists) Length() int { return l.length }

// Answers returns a copy of the canonical answer list in load order.
func (l *Lists) Answers() []string {
	return append([]string(nil), l.answers...)
}

// Allowed returns every accepted guess, sorted.
func (l *Lists) Allowed() []string {
	out := make([]string, 0, len(l.allowedSet))
	for w := range l.allowedSet {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Answer returns the answer at index i modulo the list size.
func (l *Lists) Answer(i int) string {
	n := len(l.answers)
	return l.answers[((i%n)+n)%n]
}

// Random returns a cryptographically random answer.
func (l *Lists) Random() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// Contains reports whether w is an accepted guess (answers ∪ guesses).
func (l *Lists) Contains(w string) bool {
	_, ok := l.allowedSet[clue.Normalize(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *Lists) IsAnswer(w string) bool {
	_, ok := l.answersSet[clue.Normalize(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lists) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}
