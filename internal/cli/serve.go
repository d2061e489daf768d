package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/oksasatya/todo-api/config"
	"github.com/oksasatya/todo-api/internal/container"
	pginfra "github.com/oksasatya/todo-api/internal/infrastructure/postgres"
	"github.com/oksasatya/todo-api/internal/router"
	"github.com/oksasatya/todo-api/pkg/validation"
)

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			gin.SetMode(cfg.GinMode)
			validation.Init()

			if cfg.DBDriver == config.DriverPostgres && cfg.AutoMigrate {
				if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, true, logger); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := container.Build(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           router.NewEngine(c),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Infof("server starting on :%s", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			// Graceful shutdown
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutting down server")
			ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctxShutdown); err != nil {
				return err
			}
			logger.Info("server exited properly")
			return nil
		},
	}
}
