// Package cmd wires configuration, persistence, notification transports,
// application services and the HTTP router into a runnable App.
package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gift5848/gethub222-sub001/api"
	"github.com/Gift5848/gethub222-sub001/api/health"
	apiorder "github.com/Gift5848/gethub222-sub001/api/order"
	apishop "github.com/Gift5848/gethub222-sub001/api/shop"
	apiwallet "github.com/Gift5848/gethub222-sub001/api/wallet"
	orderapp "github.com/Gift5848/gethub222-sub001/application/order"
	shopapp "github.com/Gift5848/gethub222-sub001/application/shop"
	walletapp "github.com/Gift5848/gethub222-sub001/application/wallet"
	"github.com/Gift5848/gethub222-sub001/config"
	"github.com/Gift5848/gethub222-sub001/infrastructure/notify"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence/mysql"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence/retry"
	"github.com/Gift5848/gethub222-sub001/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the assembled server process.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
	pusher *notify.RedisPusher
}

// NewApp builds the full dependency graph. Fails fast on anything the
// server cannot run without (database, logger); notification transports
// degrade to logged no-ops instead.
func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	db, err := NewMySQLConfig(cfg).Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	if cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	// Persistence.
	orderRepo := mysql.NewOrderRepository(db)
	walletRepo := mysql.NewWalletRepository(db)
	shopRepo := mysql.NewShopRepository(db)
	activityRepo := mysql.NewActivityLogRepository(db, cfg.Notify.ActivityLogLimit)
	directory := mysql.NewUserDirectory(db)
	catalog := mysql.NewProductCatalog(db)
	uowFactory := mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg))

	// Notification transports. The fan-out tolerates nil members, so a
	// disabled broker only silences its own channel.
	pusher := notify.NewRedisPusher(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := pusher.Ping(context.Background()); err != nil {
		logger.Warn("Redis unreachable, realtime pushes disabled", zap.Error(err))
	}

	var noticer notify.Noticer
	if cfg.Amqp.Enabled {
		amqpNoticer, err := notify.NewAmqpNoticer(cfg.Amqp.URL)
		if err != nil {
			logger.Warn("AMQP unreachable, durable notices disabled", zap.Error(err))
		} else {
			noticer = amqpNoticer
		}
	}
	fanout := notify.NewFanout(pusher, activityRepo, noticer)

	// Application services.
	orderService := orderapp.NewApplicationService(orderRepo, walletRepo, shopRepo, catalog, directory, uowFactory, fanout)
	walletService := walletapp.NewApplicationService(walletRepo, directory, uowFactory, fanout)
	shopService := shopapp.NewApplicationService(shopRepo, walletRepo, directory, uowFactory, fanout)

	// HTTP layer.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	router := api.NewRouter(
		cfg,
		health.NewController(cfg, sqlDB),
		apiorder.NewController(orderService),
		apiwallet.NewController(walletService),
		apishop.NewController(shopService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config: cfg,
		router: router,
		server: server,
		db:     db,
		pusher: pusher,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if a.pusher != nil {
		if err := a.pusher.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close database connection", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
	return nil
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() http.Handler {
	return a.server.Handler
}
