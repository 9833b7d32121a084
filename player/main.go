// main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	playerapi "github.com/naijascout/scout-services/player/api"
	"github.com/naijascout/scout-services/player/service"
	"github.com/naijascout/scout-services/player/store"
	"github.com/naijascout/scout-services/shared/api"
	"github.com/naijascout/scout-services/shared/config"
	"github.com/naijascout/scout-services/shared/logging"
	"github.com/naijascout/scout-services/shared/metrics"
	mongodbu "github.com/naijascout/scout-services/shared/mongodb"
	redisu "github.com/naijascout/scout-services/shared/redis"
	"github.com/naijascout/scout-services/shared/registry"
	"go.uber.org/zap"
)

func main() {
	// --- 1. Load Configuration ---
	cfg, err := config.LoadPlayerServiceConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- 2. Logging ---
	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 30,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- 3. Player Store ---
	playerStore, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open player store", zap.Error(err))
	}
	defer closeStore()

	// --- 4. Business Logic Services ---
	m := metrics.New("scout")
	playerService := service.NewPlayerService(playerStore, logger.Named("players"), m)
	queryService := service.NewQueryService(playerStore)
	statsService := service.NewStatsService(playerStore, logger.Named("stats"))

	// --- 5. API Handlers ---
	handlers := playerapi.NewPlayerAPIHandlers(playerService, queryService, statsService, logger.Named("api"))
	handlers.RequestTimeout = cfg.RequestTimeout
	handlers.StatsTimeout = cfg.StatsTimeout

	// --- 6. Service Registrar (optional) ---
	if cfg.RegistryEnabled {
		redisClient, err := redisu.NewClient(ctx, cfg.RedisAddrs, cfg.RedisPassword, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Error closing Redis client", zap.Error(err))
			}
		}()

		registrar := registry.NewServiceRegistrar(redisClient, registry.ScoutServiceType, &cfg.CommonConfig,
			map[string]string{"apiPrefix": cfg.APIPrefix}, logger.Named("registry"))
		registrar.Start()
		defer registrar.Stop()
	}

	// --- 7. HTTP Server and Routes ---
	opts := api.DefaultServerOptions()
	opts.CORSOrigins = cfg.CORSOrigins
	if cfg.StatsTimeout+5*time.Second > opts.WriteTimeout {
		opts.WriteTimeout = cfg.StatsTimeout + 5*time.Second
	}
	baseServer := api.NewBaseServer(cfg.ListenAddr, opts, logger, m)
	handlers.RegisterServiceRoutes(baseServer.Router, cfg.APIPrefix, m.Handler())

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- baseServer.Start()
	}()

	// --- 8. Graceful Shutdown ---
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP server stopped unexpectedly", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := baseServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", zap.Error(err))
		return
	}
	logger.Info("Server gracefully stopped")
}

// openStore builds the configured PlayerStore and a function that releases it.
func openStore(ctx context.Context, cfg *config.PlayerServiceConfig, logger *zap.Logger) (store.PlayerStore, func(), error) {
	if cfg.StoreBackend == config.StoreMemory {
		logger.Warn("Using in-memory player store, data will not survive a restart")
		return store.NewMemoryPlayerStore(), func() {}, nil
	}

	mongoClient, err := mongodbu.NewClient(ctx, cfg.MongoDBConnStr, cfg.MongoDBDatabase, logger)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}

	playerStore := store.NewMongoPlayerStore(mongoClient.Collection(cfg.MongoDBPlayersCollection))
	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := playerStore.EnsureIndexes(indexCtx); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to ensure player indexes: %w", err)
	}
	return playerStore, closeFn, nil
}
