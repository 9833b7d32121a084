package service_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	playerapi "github.com/naijascout/scout-services/player/api"
	"github.com/naijascout/scout-services/player/seed"
	playerservice "github.com/naijascout/scout-services/player/service"
	"github.com/naijascout/scout-services/player/store"
	"github.com/naijascout/scout-services/shared/api"
	"github.com/naijascout/scout-services/shared/models"
	"github.com/naijascout/scout-services/shared/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newScoutServer(t *testing.T) *service.ScoutClient {
	t.Helper()
	logger := zap.NewNop()
	s := store.NewMemoryPlayerStore()

	h := playerapi.NewPlayerAPIHandlers(
		playerservice.NewPlayerService(s, logger, nil),
		playerservice.NewQueryService(s),
		playerservice.NewStatsService(s, logger),
		logger,
	)
	bs := api.NewBaseServer(":0", api.DefaultServerOptions(), logger, nil)
	h.RegisterServiceRoutes(bs.Router, "/api", nil)

	srv := httptest.NewServer(bs.Handler())
	t.Cleanup(srv.Close)
	return service.NewScoutClient(srv.URL + "/api/")
}

func TestScoutClientRoundTrip(t *testing.T) {
	client := newScoutServer(t)
	ctx := context.Background()

	for _, in := range seed.Players() {
		_, err := client.CreatePlayer(ctx, in)
		require.NoError(t, err)
	}

	page, err := client.ListPlayers(ctx, service.ListOptions{Sort: "scoutPoints", Order: "desc", Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(10), page.Total)
	assert.Equal(t, 3, page.Count)
	assert.Equal(t, int64(4), page.Pagination.Pages)
	require.Len(t, page.Data, 3)
	assert.Equal(t, "Victor Osimhen", page.Data[0].Name)
	assert.Equal(t, 79, page.Data[0].ScoutPoints)

	forwards, err := client.ListPlayers(ctx, service.ListOptions{Position: string(models.PositionForward)})
	require.NoError(t, err)
	assert.Equal(t, int64(4), forwards.Total)

	id := page.Data[0].ID.Hex()
	got, err := client.GetPlayer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Napoli", got.Club)

	in := seed.Players()[0]
	in.Engagement.Goals = models.NumberOf(40)
	updated, err := client.UpdatePlayer(ctx, id, in)
	require.NoError(t, err)
	assert.Equal(t, 40+2*4+45, updated.ScoutPoints)

	stats, err := client.Overview(ctx)
	require.NoError(t, err)
	require.NotNil(t, stats.Overview)
	assert.Equal(t, int64(10), stats.Overview.TotalPlayers)
	assert.Len(t, stats.Positions, 4)

	require.NoError(t, client.DeletePlayer(ctx, id))
	_, err = client.GetPlayer(ctx, id)
	assert.ErrorIs(t, err, service.ErrPlayerNotFound)
}

func TestScoutClientErrors(t *testing.T) {
	client := newScoutServer(t)
	ctx := context.Background()

	err := client.DeletePlayer(ctx, "65a1b2c3d4e5f60718293a4b")
	assert.ErrorIs(t, err, service.ErrPlayerNotFound)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, 404, api.GetHTTPStatusCode(err))

	_, err = client.CreatePlayer(ctx, &models.PlayerInput{})
	require.ErrorIs(t, err, service.ErrInvalidRequest)
	var httpErr *api.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, api.ValidationMessage, httpErr.Message)
	assert.NotEmpty(t, httpErr.Fields)

	_, err = client.ListPlayers(ctx, service.ListOptions{Sort: "salary"})
	assert.ErrorIs(t, err, service.ErrInvalidRequest)

	stats, err := client.Overview(ctx)
	require.NoError(t, err)
	assert.Nil(t, stats.Overview)
	assert.Empty(t, stats.Positions)
}
