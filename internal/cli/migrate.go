package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/todo-api/config"
	pginfra "github.com/oksasatya/todo-api/internal/infrastructure/postgres"
)

func newMigrateCommand(opts *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the Postgres schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			if cfg.DBDriver != config.DriverPostgres {
				return fmt.Errorf("migrate requires the postgres driver, got %q", cfg.DBDriver)
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}
			return pginfra.Migrate(cfg.PostgresDSN(), dir, args[0] == "up", logger)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")
	return cmd
}
