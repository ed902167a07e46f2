package cli

import (
	"context"
	"fmt"
	"time"

	"skill-passport/internal/config"
	"skill-passport/internal/database/migration"
	dbpostgres "skill-passport/internal/database/postgres"
	"skill-passport/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to the postgres store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cfg.Store.Backend != config.StoreBackendPostgres {
				return fmt.Errorf("migrate needs STORE_BACKEND=%s, got %q", config.StoreBackendPostgres, cfg.Store.Backend)
			}
			if dir == "" {
				dir = cfg.Store.MigrationsDir
			}

			ctx := cmd.Context()
			connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			db, err := dbpostgres.Connect(connectCtx, cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() { _ = db.Close() }()

			runner := migration.Runner{FS: migrations.FS, Dir: dir, Logger: log}
			return runner.Run(ctx, db.SQLDB())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "read migrations from this directory instead of the embedded set")
	return cmd
}
