package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func wordsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "Show word list statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := g.lists()
			if err != nil {
				return err
			}
			answers, allowed := lists.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "length:  %d\n", lists.Length())
			fmt.Fprintf(out, "answers: %d\n", answers)
			fmt.Fprintf(out, "allowed: %d\n", allowed)
			return nil
		},
	}
}
