// Package commands is the cobra command tree for the wordle binary.
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/logging"
	"github.com/robalobadob/wordle/internal/words"
)

// globals holds the persistent flags and the config they resolve to.
type globals struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

// Execute runs the CLI until it returns or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRoot().ExecuteContext(ctx)
}

// NewRoot builds a fresh command tree.
func NewRoot() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "wordle",
		Short:         "Word-guessing game: terminal play, HTTP server and clue scoring",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			if g.logLevel != "" {
				cfg.LogLevel = g.logLevel
			}
			if _, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()); err != nil {
				return err
			}
			g.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(playCmd(g), serveCmd(g), scoreCmd(), wordsCmd(g))
	return root
}

func (g *globals) lists() (*words.Lists, error) {
	return words.Load(words.Options{
		AnswersFile: g.cfg.AnswersFile,
		AllowedFile: g.cfg.AllowedFile,
		Length:      g.cfg.WordLength,
	})
}
