// player/service/query_service.go
package service

import (
	"context"

	"github.com/naijascout/scout-services/player/store"
	"github.com/naijascout/scout-services/shared/models"
)

// QueryService runs list queries. It never writes.
type QueryService struct {
	store store.PlayerStore
}

func NewQueryService(s store.PlayerStore) *QueryService {
	return &QueryService{store: s}
}

// ListPlayers returns the requested page. A page past the end is empty but
// still carries the total.
func (qs *QueryService) ListPlayers(ctx context.Context, q models.PlayerQuery) (*models.PlayerPage, error) {
	if q.Page < 1 {
		q.Page = models.DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = models.DefaultLimit
	}

	items, total, err := qs.store.ListPlayers(ctx, q)
	if err != nil {
		return nil, storeErr("list players", "", err)
	}
	if items == nil {
		items = []models.Player{}
	}

	return &models.PlayerPage{
		Items: items,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	}, nil
}
