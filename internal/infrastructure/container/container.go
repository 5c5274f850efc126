// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantrychef/v1/internal/application/auth"
	"github.com/pantrychef/v1/internal/application/favorites"
	"github.com/pantrychef/v1/internal/infrastructure/ai/gemini"
	"github.com/pantrychef/v1/internal/infrastructure/config"
	"github.com/pantrychef/v1/internal/infrastructure/http/server"
	gormRepo "github.com/pantrychef/v1/internal/infrastructure/persistence/gorm"
	"github.com/pantrychef/v1/internal/infrastructure/persistence/memory"
	redisStore "github.com/pantrychef/v1/internal/infrastructure/persistence/redis"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"github.com/pantrychef/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	SessionModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.IsDevelopment(),
		})
	},
)

// DatabaseModule provides the database connection
var DatabaseModule = fx.Provide(
	gormRepo.NewConnection,
)

// SessionModule provides the session store. Redis is the normal backend;
// the in-memory store covers local runs without a Redis instance.
var SessionModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.SessionStore, error) {
		if !cfg.Redis.Enabled {
			log.Info("Using in-memory session store")
			return memory.NewSessionStore(cfg.Auth.SessionMaxAge), nil
		}

		client, err := redisStore.NewClient(cfg)
		if err != nil {
			return nil, err
		}

		log.Info("Connected to Redis session store", zap.String("addr", cfg.RedisAddr()))
		return redisStore.NewSessionStore(client, cfg.Auth.SessionMaxAge, log), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewUserRepository,
	gormRepo.NewFavoriteRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		users outbound.UserRepository,
		sessions outbound.SessionStore,
		cfg *config.Config,
		log *zap.Logger,
	) *auth.Service {
		return auth.NewService(users, sessions, cfg.Auth.BCryptCost, log)
	},

	favorites.NewService,

	fx.Annotate(
		func(cfg *config.Config, log *zap.Logger) *gemini.Client {
			return gemini.NewClient(&cfg.AI, log)
		},
		fx.As(new(outbound.RecipeGenerator)),
	),
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting PantryChef",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down PantryChef")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
