// player/service/player_service.go
package service

import (
	"context"

	"github.com/naijascout/scout-services/player/store"
	"github.com/naijascout/scout-services/player/validation"
	"github.com/naijascout/scout-services/shared/metrics"
	"github.com/naijascout/scout-services/shared/models"
	"go.uber.org/zap"
)

// PlayerService is the only writer of player records. Every create and update
// recomputes scout points before the store sees the record.
type PlayerService struct {
	store   store.PlayerStore
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewPlayerService creates a new PlayerService instance. m may be nil.
func NewPlayerService(s store.PlayerStore, logger *zap.Logger, m *metrics.Metrics) *PlayerService {
	return &PlayerService{
		store:   s,
		logger:  logger,
		metrics: m,
	}
}

// CreatePlayer validates in, applies defaults and persists the new player.
func (ps *PlayerService) CreatePlayer(ctx context.Context, in *models.PlayerInput) (p *models.Player, err error) {
	defer func() { ps.metrics.RecordPlayerWrite("create", err) }()

	fields, err := validation.Player(in)
	if err != nil {
		return nil, err
	}

	p = fields.NewPlayer()
	p.ScoutPoints = models.ComputeScoutPoints(p.Engagement)

	if err := ps.store.CreatePlayer(ctx, p); err != nil {
		ps.logger.Error("Failed to create player", zap.String("name", p.Name), zap.Error(err))
		return nil, storeErr("create player", "", err)
	}

	ps.logger.Info("Created player",
		zap.String("id", p.ID.Hex()),
		zap.String("name", p.Name),
		zap.Int("scoutPoints", p.ScoutPoints))
	return p, nil
}

// GetPlayer returns the player with the given hex id.
func (ps *PlayerService) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	oid, err := validation.PlayerID(id)
	if err != nil {
		return nil, err
	}

	p, err := ps.store.GetPlayer(ctx, oid)
	if err != nil {
		return nil, storeErr("get player", id, err)
	}
	return p, nil
}

// UpdatePlayer validates in with the create rules and applies it atomically.
// Optional fields missing from in keep their stored values.
func (ps *PlayerService) UpdatePlayer(ctx context.Context, id string, in *models.PlayerInput) (p *models.Player, err error) {
	defer func() { ps.metrics.RecordPlayerWrite("update", err) }()

	oid, fields, err := validation.Update(id, in)
	if err != nil {
		return nil, err
	}

	upd := store.PlayerUpdate{
		Fields:      fields,
		ScoutPoints: fields.ScoutPoints(),
	}
	p, err = ps.store.UpdatePlayer(ctx, oid, upd)
	if err != nil {
		return nil, storeErr("update player", id, err)
	}

	ps.logger.Info("Updated player", zap.String("id", id), zap.Int("scoutPoints", p.ScoutPoints))
	return p, nil
}

// DeletePlayer permanently removes the player with the given hex id.
func (ps *PlayerService) DeletePlayer(ctx context.Context, id string) (err error) {
	defer func() { ps.metrics.RecordPlayerWrite("delete", err) }()

	oid, err := validation.PlayerID(id)
	if err != nil {
		return err
	}
	if err := ps.store.DeletePlayer(ctx, oid); err != nil {
		return storeErr("delete player", id, err)
	}

	ps.logger.Info("Deleted player", zap.String("id", id))
	return nil
}

// Ping checks that the backing store is reachable.
func (ps *PlayerService) Ping(ctx context.Context) error {
	return ps.store.Ping(ctx)
}
