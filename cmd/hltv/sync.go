package main

import (
	"github.com/spf13/cobra"

	"hltv-parser/internal/app"
	"hltv-parser/internal/storage"
	"hltv-parser/internal/storage/mssql"
)

func newSyncCmd(opts *options) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Store new results and upcoming matches, once or on the configured schedule.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var repo storage.Repository
			if dryRun {
				repo = storage.NewMemoryRepository()
			} else {
				if err := s.cfg.ValidateStorage(); err != nil {
					return err
				}
				db, err := mssql.NewRepository(s.cfg.Storage.DSN, s.cfg.GetCommandTimeout(), s.logger)
				if err != nil {
					return err
				}
				if err := db.Migrate(cmd.Context()); err != nil {
					db.Close()
					return err
				}
				repo = db
			}
			defer repo.Close()

			ctx, cancel := app.GracefulShutdown(s.logger, 0)
			defer cancel()

			orchestrator := app.NewOrchestrator(s.cfg, s.logger, s.client, repo)
			return app.RunScheduled(ctx, s.cfg, s.logger, orchestrator)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "keep records in memory instead of the database")
	return cmd
}
