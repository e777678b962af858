package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/clue"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/terminal"
)

func playCmd(g *globals) *cobra.Command {
	var (
		hard        bool
		hints       bool
		answer      string
		maxAttempts int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one round in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := g.lists()
			if err != nil {
				return err
			}
			target := lists.Random()
			if answer != "" {
				w, err := clue.ParseWord(answer, lists.Length())
				if err != nil {
					return fmt.Errorf("--answer: %w", err)
				}
				target = string(w)
			}
			if maxAttempts <= 0 {
				maxAttempts = g.cfg.MaxAttempts
			}
			round, err := game.New(target,
				game.WithDictionary(lists),
				game.WithMaxAttempts(maxAttempts),
				game.WithHardMode(hard),
			)
			if err != nil {
				return err
			}
			s := &terminal.Session{Game: round, In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			if hints {
				s.Candidates = lists.Answers()
			}
			if err := s.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&hard, "hard", false, "revealed letters must be reused")
	cmd.Flags().BoolVar(&hints, "hints", false, "show how many answers are still possible")
	cmd.Flags().StringVar(&answer, "answer", "", "fix the answer instead of picking one")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "attempts per round (default from config)")
	return cmd
}
