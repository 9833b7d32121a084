// seeder/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/naijascout/scout-services/player/seed"
	"github.com/naijascout/scout-services/shared/config"
	"github.com/naijascout/scout-services/shared/logging"
	redisu "github.com/naijascout/scout-services/shared/redis"
	"github.com/naijascout/scout-services/shared/registry"
	"github.com/naijascout/scout-services/shared/service"
	"go.uber.org/zap"
)

func main() {
	baseURL := flag.String("url", "", "scout-service API base URL including the prefix, e.g. http://localhost:5000/api (default: discover via the Redis registry)")
	reset := flag.Bool("reset", true, "delete every existing player before seeding")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	logger, err := logging.New(logging.Options{Level: "info", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	url := *baseURL
	if url == "" {
		url, err = discover(ctx, logger)
		if err != nil {
			logger.Fatal("Failed to discover scout-service", zap.Error(err))
		}
	}

	client := service.NewScoutClient(url)
	if err := run(ctx, client, *reset, logger); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}
}

func run(ctx context.Context, client *service.ScoutClient, reset bool, logger *zap.Logger) error {
	if reset {
		removed, err := clearPlayers(ctx, client)
		if err != nil {
			return fmt.Errorf("clear existing players: %w", err)
		}
		logger.Info("Cleared existing players", zap.Int("removed", removed))
	}

	players := seed.Players()
	for _, in := range players {
		p, err := client.CreatePlayer(ctx, in)
		if err != nil {
			return fmt.Errorf("create %s: %w", *in.Name, err)
		}
		logger.Info("Seeded player", zap.String("id", p.ID.Hex()), zap.String("name", p.Name), zap.Int("scoutPoints", p.ScoutPoints))
	}
	logger.Info("Seeded players successfully", zap.Int("count", len(players)))

	stats, err := client.Overview(ctx)
	if err != nil {
		return fmt.Errorf("read overview: %w", err)
	}
	if stats.Overview != nil {
		logger.Info("Player totals",
			zap.Int64("totalPlayers", stats.Overview.TotalPlayers),
			zap.Int64("avgScoutPoints", int64(math.Round(stats.Overview.AvgScoutPoints))))
	}
	return nil
}

// clearPlayers deletes every player, always reading the first page since
// deletions shift the rest forward.
func clearPlayers(ctx context.Context, client *service.ScoutClient) (int, error) {
	removed := 0
	for {
		page, err := client.ListPlayers(ctx, service.ListOptions{Limit: 100})
		if err != nil {
			return removed, err
		}
		if len(page.Data) == 0 {
			return removed, nil
		}
		for _, p := range page.Data {
			err := client.DeletePlayer(ctx, p.ID.Hex())
			if err != nil && !errors.Is(err, service.ErrPlayerNotFound) {
				return removed, err
			}
			removed++
		}
	}
}

// discover looks the service up in the Redis registry using the shared SCOUT_ settings.
func discover(ctx context.Context, logger *zap.Logger) (string, error) {
	cfg, err := config.LoadCommonConfig()
	if err != nil {
		return "", err
	}
	rdb, err := redisu.NewClient(ctx, cfg.RedisAddrs, cfg.RedisPassword, logger)
	if err != nil {
		return "", err
	}
	defer rdb.Close()

	info, err := registry.NewRegistryClient(rdb, cfg.HeartbeatTTL, logger).Discover(ctx, registry.ScoutServiceType, hostname())
	if err != nil {
		return "", err
	}
	url := info.BaseURL() + info.Metadata["apiPrefix"]
	logger.Info("Discovered scout-service", zap.String("serviceId", info.ServiceID), zap.String("url", url))
	return url, nil
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return ""
	}
	return h
}
