// player/store/memory_store.go
package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/naijascout/scout-services/shared/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryPlayerStore keeps players in process memory. Each method holds the
// lock for its whole read or write, which gives the same per-record
// atomicity the MongoDB store gets from single-document operations.
type MemoryPlayerStore struct {
	mu      sync.RWMutex
	players map[primitive.ObjectID]models.Player
	now     func() time.Time
}

// NewMemoryPlayerStore returns an empty store.
func NewMemoryPlayerStore() *MemoryPlayerStore {
	return &MemoryPlayerStore{
		players: make(map[primitive.ObjectID]models.Player),
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (s *MemoryPlayerStore) CreatePlayer(_ context.Context, p *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, exists := s.players[p.ID]; exists {
		return ErrDuplicatePlayer
	}
	s.players[p.ID] = *p
	return nil
}

func (s *MemoryPlayerStore) GetPlayer(_ context.Context, id primitive.ObjectID) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return &p, nil
}

func (s *MemoryPlayerStore) UpdatePlayer(_ context.Context, id primitive.ObjectID, upd PlayerUpdate) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	upd.Fields.ApplyTo(&p)
	p.ScoutPoints = upd.ScoutPoints
	p.UpdatedAt = s.now()
	s.players[id] = p
	return &p, nil
}

func (s *MemoryPlayerStore) DeletePlayer(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return ErrPlayerNotFound
	}
	delete(s.players, id)
	return nil
}

func (s *MemoryPlayerStore) ListPlayers(_ context.Context, q models.PlayerQuery) ([]models.Player, int64, error) {
	s.mu.RLock()
	matched := make([]models.Player, 0, len(s.players))
	for _, p := range s.players {
		if q.Filter.Matches(&p) {
			matched = append(matched, p)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b models.Player) int {
		return q.Sort.Compare(&a, &b)
	})

	total := int64(len(matched))
	start := q.Skip()
	if start >= total {
		return []models.Player{}, total, nil
	}
	end := min(start+int64(q.Limit), total) // start < total, so no overflow
	return matched[start:end], total, nil
}

func (s *MemoryPlayerStore) Overview(_ context.Context) (*models.OverviewStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.players) == 0 {
		return nil, nil
	}
	var (
		stats       models.OverviewStats
		scoutPoints int64
		ages        int64
		first       = true
	)
	for _, p := range s.players {
		stats.TotalPlayers++
		scoutPoints += int64(p.ScoutPoints)
		ages += int64(p.Age)
		stats.TotalGoals += int64(p.Engagement.Goals)
		stats.TotalAssists += int64(p.Engagement.Assists)
		stats.TotalInteractions += int64(p.Engagement.Interactions)
		if first || p.ScoutPoints > stats.MaxScoutPoints {
			stats.MaxScoutPoints = p.ScoutPoints
			first = false
		}
	}
	stats.AvgScoutPoints = float64(scoutPoints) / float64(stats.TotalPlayers)
	stats.AvgAge = float64(ages) / float64(stats.TotalPlayers)
	return &stats, nil
}

func (s *MemoryPlayerStore) PositionBreakdown(_ context.Context) ([]models.PositionStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type acc struct {
		count int64
		sum   int64
	}
	groups := make(map[models.Position]*acc)
	for _, p := range s.players {
		g, ok := groups[p.Position]
		if !ok {
			g = &acc{}
			groups[p.Position] = g
		}
		g.count++
		g.sum += int64(p.ScoutPoints)
	}

	positions := make([]models.PositionStats, 0, len(groups))
	for pos, g := range groups {
		positions = append(positions, models.PositionStats{
			Position:       pos,
			Count:          g.count,
			AvgScoutPoints: float64(g.sum) / float64(g.count),
		})
	}
	slices.SortFunc(positions, func(a, b models.PositionStats) int {
		return strings.Compare(string(a.Position), string(b.Position))
	})
	return positions, nil
}

func (s *MemoryPlayerStore) Ping(context.Context) error { return nil }
