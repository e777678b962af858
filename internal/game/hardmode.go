package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/internal/clue"
)

// checkHardMode enforces the usual hard-mode rules against every prior attempt:
//   - a Correct letter must stay in its position;
//   - a letter marked Correct/Present k times must appear at least k times.
func checkHardMode(history []Attempt, guess clue.Word) error {
	g := []rune(string(guess))
	for _, a := range history {
		prev := []rune(string(a.Guess))
		need := map[rune]int{}
		for i, r := range prev {
			switch a.Clue[i] {
			case clue.Correct:
				if i < len(g) && g[i] != r {
					return fmt.Errorf("%w: need %c as letter %d", ErrHardMode, r, i+1)
				}
				need[r]++
			case clue.Present:
				need[r]++
			}
		}
		for r, n := range need {
			if have := strings.Count(string(guess), string(r)); have < n {
				if n == 1 {
					return fmt.Errorf("%w: guess must contain %c", ErrHardMode, r)
				}
				return fmt.Errorf("%w: guess must contain %c at least %d times", ErrHardMode, r, n)
			}
		}
	}
	return nil
}
