// player/service/stats_service.go
package service

import (
	"context"

	"github.com/naijascout/scout-services/player/store"
	"github.com/naijascout/scout-services/shared/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StatsService aggregates over the whole player set.
type StatsService struct {
	store  store.PlayerStore
	logger *zap.Logger
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(s store.PlayerStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		store:  s,
		logger: logger,
	}
}

// Overview computes the totals and the per-position breakdown concurrently.
// Overview is nil when there are no players. The two reads are independent,
// so a write landing between them can make the position counts disagree
// with TotalPlayers in that response.
func (ss *StatsService) Overview(ctx context.Context) (*models.PlayerStats, error) {
	var (
		overview  *models.OverviewStats
		positions []models.PositionStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview, err = ss.store.Overview(gctx)
		return storeErr("aggregate overview", "", err)
	})
	g.Go(func() error {
		var err error
		positions, err = ss.store.PositionBreakdown(gctx)
		return storeErr("aggregate positions", "", err)
	})
	if err := g.Wait(); err != nil {
		ss.logger.Error("Player stats aggregation failed", zap.Error(err))
		return nil, err
	}

	if positions == nil {
		positions = []models.PositionStats{}
	}
	return &models.PlayerStats{Overview: overview, Positions: positions}, nil
}
