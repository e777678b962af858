// internal/terminal/session.go
//
// Interactive round driver for a line-oriented terminal.
// Each iteration blocks on one line of input, submits it to the round and
// prints either the rendered clue row or the rejection reason. Rejected
// guesses are reprompted without consuming an attempt. The loop ends when the
// round is terminal, input is exhausted, or ctx is done.

package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/hint"
	"github.com/robalobadob/wordle/internal/render"
)

// Session wires one round to an input and an output.
type Session struct {
	Game     *game.Game
	In       io.Reader
	Out      io.Writer
	Renderer *render.Renderer
	// Candidates enables the remaining-words hint when non-empty.
	Candidates []string
	// Title heads the share grid printed at the end.
	Title string
}

// Run drives the round to completion. Running out of input is not an error;
// the round is simply left unfinished. Cancelling ctx returns ctx.Err() even
// while a read is blocked.
func (s *Session) Run(ctx context.Context) error {
	if s.Renderer == nil {
		s.Renderer = render.New(s.Out)
	}
	if s.Title == "" {
		s.Title = "Wordle"
	}
	g := s.Game
	ctx, cancel := context.WithCancel(ctx)
	defer cancel() // releases the reader once the round ends
	lines, readErr := s.readLines(ctx)

	fmt.Fprintf(s.Out, "Guess the %d-letter word in %d tries.\n", g.Target.Len(), g.MaxAttempts)
	for !g.State.Terminal() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(s.Out, "[%d/%d] > ", g.AttemptsUsed()+1, g.MaxAttempts)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.Out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.Out)
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := <-readErr; err != nil {
					return fmt.Errorf("read guess: %w", err)
				}
				log.Debug().Str("round", g.ID).Int("attempts", g.AttemptsUsed()).Msg("input closed")
				return nil
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}

		a, err := g.Submit(line)
		if err != nil {
			fmt.Fprintln(s.Out, describe(err, g))
			continue
		}
		fmt.Fprintln(s.Out, s.Renderer.Row(a))
		if len(s.Candidates) > 0 && !g.State.Terminal() {
			n := hint.Count(s.Candidates, g.History)
			fmt.Fprintln(s.Out, s.Renderer.Muted(fmt.Sprintf("%d possible words left", n)))
		}
	}

	switch g.State {
	case game.Solved:
		fmt.Fprintf(s.Out, "Solved in %d!\n", g.AttemptsUsed())
	case game.Exhausted:
		fmt.Fprintf(s.Out, "Out of tries. The word was %s.\n", strings.ToUpper(string(g.Target)))
	}
	fmt.Fprintf(s.Out, "\n%s\n", render.Share(s.Title, g))
	log.Debug().Str("round", g.ID).Stringer("state", g.State).Int("attempts", g.AttemptsUsed()).Msg("round over")
	return nil
}

// readLines scans In on its own goroutine, one line per receive. The lines
// channel is closed at end of input, after which readErr yields the scan
// error. A read blocked in In outlives a cancelled ctx until In returns.
func (s *Session) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.In)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- sc.Err()
	}()
	return lines, readErr
}

func describe(err error, g *game.Game) string {
	switch {
	case errors.Is(err, game.ErrLengthMismatch):
		return fmt.Sprintf("Guess must be %d letters.", g.Target.Len())
	case errors.Is(err, game.ErrInvalidWord):
		return "Not in word list."
	case errors.Is(err, game.ErrHardMode):
		return "Hard mode: " + strings.TrimPrefix(err.Error(), game.ErrHardMode.Error()+": ")
	default:
		return err.Error()
	}
}
