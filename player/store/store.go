// player/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/naijascout/scout-services/shared/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors returned by every PlayerStore implementation.
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrDuplicatePlayer = errors.New("player already exists")
)

// PlayerUpdate is a validated change set plus the scout points the caller
// computed for it. Stores write both in a single atomic operation.
type PlayerUpdate struct {
	Fields      *models.PlayerFields
	ScoutPoints int
}

// PlayerStore is the persistence contract the player service depends on.
type PlayerStore interface {
	// CreatePlayer assigns the id and timestamps on p and persists it.
	CreatePlayer(ctx context.Context, p *models.Player) error
	GetPlayer(ctx context.Context, id primitive.ObjectID) (*models.Player, error)
	// UpdatePlayer applies upd and refreshes updatedAt atomically, returning the new record.
	UpdatePlayer(ctx context.Context, id primitive.ObjectID, upd PlayerUpdate) (*models.Player, error)
	DeletePlayer(ctx context.Context, id primitive.ObjectID) error
	// ListPlayers returns one page of matching players and the total match count.
	ListPlayers(ctx context.Context, q models.PlayerQuery) ([]models.Player, int64, error)
	// Overview aggregates the whole set. It returns nil when there are no players.
	Overview(ctx context.Context) (*models.OverviewStats, error)
	PositionBreakdown(ctx context.Context) ([]models.PositionStats, error)
	Ping(ctx context.Context) error
}

var (
	_ PlayerStore = (*MongoPlayerStore)(nil)
	_ PlayerStore = (*MemoryPlayerStore)(nil)
)
