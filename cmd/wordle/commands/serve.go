package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/db"
	"github.com/robalobadob/wordle/internal/httpserver"
	"github.com/robalobadob/wordle/internal/store"
)

func serveCmd(g *globals) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP game server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ttl, err := g.cfg.TTL()
			if err != nil {
				return err
			}
			lists, err := g.lists()
			if err != nil {
				return err
			}
			sqlDB, err := db.OpenAndMigrate(ctx, g.cfg.DBPath)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			srv := httpserver.New(g.cfg, store.NewMemoryStore(store.WithTTL(ttl)), lists, sqlDB)
			if addr == "" {
				addr = ":" + g.cfg.Port
			}
			answers, allowed := lists.Stats()
			log.Info().Str("addr", addr).Str("db", g.cfg.DBPath).
				Int("answers", answers).Int("allowed", allowed).Msg("starting go-server")
			return srv.Start(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :$PORT)")
	return cmd
}
