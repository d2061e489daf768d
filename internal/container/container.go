// Package container builds the application's components from config. It
// replaces package-level singletons with one explicit value passed to the router.
package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/config"
	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/domain/repository"
	"github.com/oksasatya/todo-api/internal/infrastructure/cache"
	"github.com/oksasatya/todo-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/todo-api/internal/infrastructure/postgres"
	"github.com/oksasatya/todo-api/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Store repository.Store

	Users     *application.UserService
	Todos     *application.TodoService
	Addresses *application.AddressService

	closers []func()
}

// New wires services over an already built store. Used directly by tests.
func New(cfg *config.Config, logger *logrus.Logger, store repository.Store, revoker application.TokenRevoker) *Container {
	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL)
	passwords := helpers.NewPasswordHasher(cfg.BcryptCost)
	return &Container{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Users:     application.NewUserService(store, passwords, jwt, revoker, logger),
		Todos:     application.NewTodoService(store, logger),
		Addresses: application.NewAddressService(store, logger),
	}
}

// Build opens the configured storage and Redis, then wires services.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	var (
		store   repository.Store
		closers []func()
	)
	switch cfg.DBDriver {
	case config.DriverMemory:
		store = memory.NewStore()
		logger.Warn("using in-memory storage; data is lost on exit")
	default:
		p, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		db := pginfra.OpenDB(p)
		store = pginfra.NewStore(db)
		closers = append(closers, func() { _ = db.Close() }, p.Close)
	}

	var revoker application.TokenRevoker = application.NoopRevoker{}
	if cfg.RedisAddr != "" {
		client, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			runAll(closers)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		revoker = cache.NewRevocationStore(client, cfg.AccessTTL)
		closers = append(closers, func() { _ = client.Close() })
	} else {
		logger.Info("REDIS_ADDR empty; token revocation disabled")
	}

	c := New(cfg, logger, store, revoker)
	c.closers = closers
	return c, nil
}

// Close releases connections in reverse order of acquisition.
func (c *Container) Close() {
	runAll(c.closers)
	c.closers = nil
}

func runAll(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
