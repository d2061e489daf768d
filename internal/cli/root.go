// Package cli defines the todo-api command tree.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/todo-api/config"
	"github.com/oksasatya/todo-api/pkg/helpers"
)

type options struct {
	configFile string
}

func (o *options) load() (*config.Config, *logrus.Logger, error) {
	_ = godotenv.Load() // load .env if present
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, helpers.NewLogger(cfg.AppName, cfg.Env), nil
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "todo-api",
		Short: "Multi-user todo REST API",
		Long: `todo-api serves the todo, user and address REST endpoints.

Configuration comes from the environment (and .env), optionally overlaid by
a YAML file given with --config or CONFIG_FILE.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to a YAML config file")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newMigrateCommand(opts))
	root.AddCommand(newSeedAdminCommand(opts))
	return root
}
