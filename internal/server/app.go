// Package server initializes and runs the storefront server. It selects the
// storage backends, seeds the demo account, and serves gRPC until a
// termination signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/crickshots/internal/logging"
	"github.com/dmitrijs2005/crickshots/internal/server/config"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/crickshots/internal/server/services"
	"github.com/dmitrijs2005/crickshots/internal/server/storage"

	gs "github.com/dmitrijs2005/crickshots/internal/server/grpc"
)

// seams for tests
var (
	openPostgres = func(ctx context.Context, dsn string, opts ...repomanager.Option) (repomanager.RepositoryManager, error) {
		return repomanager.OpenPostgres(ctx, dsn, opts...)
	}
	newObjectStore = func(ctx context.Context, c storage.S3Config) (storage.ObjectStore, error) {
		return storage.NewS3Store(ctx, c)
	}
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	redis       *redis.Client
	grpcServer  *gs.GRPCServer
	userService *services.UserService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger}

	var opts []repomanager.Option
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			_ = app.redis.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		opts = append(opts, repomanager.WithRefreshTokens(refreshtokens.NewRedisRepository(app.redis)))
	}

	switch c.StorageMode {
	case config.StorageMemory:
		app.repomanager = repomanager.NewInMemoryRepositoryManager(nil, opts...)
	case config.StoragePostgres:
		rm, err := openPostgres(ctx, c.DatabaseDSN, opts...)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.repomanager = rm
	default:
		app.Close()
		return nil, fmt.Errorf("unknown storage mode %q", c.StorageMode)
	}

	if err := app.repomanager.RunMigrations(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var store storage.ObjectStore
	if c.S3Enabled {
		store, err = newObjectStore(ctx, storage.S3Config{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
	}

	cat := catalog.NewStaticRepository(catalog.SampleImages)
	app.userService = services.NewUserService(app.repomanager, c)

	app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, gs.Services{
		Users:    app.userService,
		Catalog:  services.NewCatalogService(cat),
		Checkout: services.NewCheckoutService(app.repomanager, cat),
		Receipts: services.NewReceiptService(app.repomanager, store, c.ReceiptURLValidityDuration),
	}, c.SecretKey)

	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancel := app.initSignalHandler(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageMode, "redis", app.redis != nil, "s3", app.config.S3Enabled)

	if app.config.SeedFixtureUser {
		if err := app.userService.SeedFixtureUser(ctx); err != nil {
			return err
		}
		app.logger.Info(ctx, "Fixture user ready", "email", services.FixtureUser.Email)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.grpcServer.Run(ctx)
	})

	err := g.Wait()
	app.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}
	return nil
}

// Close releases the database and Redis connections.
func (app *App) Close() {
	if app.repomanager != nil {
		if err := app.repomanager.Close(); err != nil {
			app.logger.Warn(context.Background(), "error closing repositories", "error", err)
		}
	}
	if app.redis != nil {
		_ = app.redis.Close()
	}
}
