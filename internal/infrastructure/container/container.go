// Package container provides dependency injection using Uber FX.
package container

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/zaikabox/v1/internal/application/advisory"
	"github.com/zaikabox/v1/internal/application/order"
	"github.com/zaikabox/v1/internal/application/user"
	"github.com/zaikabox/v1/internal/domain/menu"
	"github.com/zaikabox/v1/internal/infrastructure/ai/gemini"
	"github.com/zaikabox/v1/internal/infrastructure/catalog"
	"github.com/zaikabox/v1/internal/infrastructure/config"
	"github.com/zaikabox/v1/internal/infrastructure/http/apiserver"
	gormRepo "github.com/zaikabox/v1/internal/infrastructure/persistence/gorm"
	"github.com/zaikabox/v1/internal/infrastructure/persistence/sqlite"
	"github.com/zaikabox/v1/internal/ports/outbound"
	"github.com/zaikabox/v1/pkg/healthcheck"
	"github.com/zaikabox/v1/pkg/logger"
)

// Module provides all dependency injection modules.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CatalogModule,
	RepositoryModule,
	ServiceModule,
	HealthModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration.
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging.
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.IsDevelopment(),
		})
	},
)

// DatabaseModule provides the SQLite connection.
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Warn
		if cfg.IsDevelopment() {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup database: %w", err)
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
		)
		return db, nil
	},
)

// CatalogModule generates the menu catalog at startup.
var CatalogModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *menu.Catalog {
		seed := cfg.Catalog.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		generated := catalog.NewGenerator(seed).Generate()
		log.Info("Menu catalog generated",
			zap.Int("items", generated.Len()),
			zap.Int64("seed", seed),
		)
		return generated
	},
)

// RepositoryModule provides repository implementations.
var RepositoryModule = fx.Provide(
	gormRepo.NewUserRepository,
	gormRepo.NewOrderRepository,
)

// ServiceModule provides application services.
var ServiceModule = fx.Provide(
	// Remote advisory client
	func(cfg *config.Config, log *zap.Logger) outbound.AdvisoryClient {
		return gemini.NewClient(gemini.Config{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
			Offline: cfg.AI.Offline,
		}, log)
	},

	// Advisory coordinator
	func(client outbound.AdvisoryClient, cat *menu.Catalog, log *zap.Logger) *advisory.Service {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		return advisory.NewService(client, advisory.NewRecommender(rng), cat, log)
	},

	// User service
	func(
		userRepo outbound.UserRepository,
		advisorySvc *advisory.Service,
		cfg *config.Config,
		log *zap.Logger,
	) *user.Service {
		return user.NewService(userRepo, advisorySvc, cfg.Auth.JWTSecret, log)
	},

	// Order service
	func(
		orderRepo outbound.OrderRepository,
		userRepo outbound.UserRepository,
		advisorySvc *advisory.Service,
		cat *menu.Catalog,
		log *zap.Logger,
	) *order.Service {
		return order.NewService(orderRepo, userRepo, advisorySvc, cat, nil, order.DefaultLifecycleDelays, nil, log)
	},
)

// HealthModule provides dependency health checks.
var HealthModule = fx.Provide(
	func(cfg *config.Config, db *gorm.DB, client outbound.AdvisoryClient) (*healthcheck.HealthCheck, error) {
		hc := healthcheck.New(cfg.App.Version)

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access database handle: %w", err)
		}
		hc.Register("database", healthcheck.NewDatabaseChecker(sqlDB))
		hc.Register("advisory", healthcheck.NewAdvisoryChecker(client.Available))

		return hc, nil
	},
)

// HTTPModule provides the HTTP server.
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule wires startup and shutdown hooks.
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := server.Shutdown(ctx); err != nil {
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
