package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/clue"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/render"
)

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <target> <guess>",
		Short: "Print the clue a guess earns against a target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := clue.ParseWord(args[0], 0)
			if err != nil {
				return fmt.Errorf("target: %w", err)
			}
			guess, err := clue.ParseWord(args[1], 0)
			if err != nil {
				return fmt.Errorf("guess: %w", err)
			}
			c, err := clue.Evaluate(target, guess)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.New(out).Row(game.Attempt{Guess: guess, Clue: c}))
			fmt.Fprintf(out, "%s %s\n", c, render.Symbols(c))
			return nil
		},
	}
}
