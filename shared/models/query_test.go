package models

import (
	"encoding/json"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseSortField(t *testing.T) {
	for _, name := range []string{"scoutPoints", "age", "name", "position", "status"} {
		f, ok := ParseSortField(name)
		require.True(t, ok, name)
		assert.Equal(t, name, f.String())
	}

	_, ok := ParseSortField("createdAt")
	assert.False(t, ok)
	_, ok = ParseSortField("$where")
	assert.False(t, ok)
}

func TestParseSortOrder(t *testing.T) {
	o, ok := ParseSortOrder("asc")
	assert.True(t, ok)
	assert.Equal(t, SortAsc, o)

	o, ok = ParseSortOrder("desc")
	assert.True(t, ok)
	assert.Equal(t, SortDesc, o)

	_, ok = ParseSortOrder("ASC")
	assert.False(t, ok)
}

func TestSortCompareBreaksTiesByID(t *testing.T) {
	first := primitive.NewObjectIDFromTimestamp(time.Unix(1_600_000_000, 0))
	second := primitive.NewObjectIDFromTimestamp(time.Unix(1_700_000_000, 0))

	players := []Player{
		{ID: second, Name: "B", ScoutPoints: 10},
		{ID: first, Name: "C", ScoutPoints: 10},
		{ID: primitive.NewObjectID(), Name: "A", ScoutPoints: 30},
	}

	s := Sort{Field: SortByScoutPoints, Order: SortDesc}
	slices.SortFunc(players, func(a, b Player) int { return s.Compare(&a, &b) })

	assert.Equal(t, "A", players[0].Name)
	assert.Equal(t, first, players[1].ID, "equal scout points fall back to ascending id")
	assert.Equal(t, second, players[2].ID)

	// Ties still break ascending when the field order is ascending.
	s.Order = SortAsc
	slices.SortFunc(players, func(a, b Player) int { return s.Compare(&a, &b) })
	assert.Equal(t, first, players[0].ID)
	assert.Equal(t, second, players[1].ID)
	assert.Equal(t, "A", players[2].Name)
}

func TestPlayerFilterMatches(t *testing.T) {
	fwd := PositionForward
	signed := StatusSigned
	p := &Player{Position: PositionForward, Status: StatusActive}

	assert.True(t, PlayerFilter{}.Matches(p))
	assert.True(t, PlayerFilter{Position: &fwd}.Matches(p))
	assert.False(t, PlayerFilter{Position: &fwd, Status: &signed}.Matches(p))
}

func TestPlayerQuerySkip(t *testing.T) {
	q := DefaultPlayerQuery()
	assert.Equal(t, int64(0), q.Skip())
	q.Page, q.Limit = 3, 25
	assert.Equal(t, int64(50), q.Skip())

	q.Page, q.Limit = 100000000000000000, 100
	assert.Equal(t, int64(math.MaxInt64), q.Skip(), "saturates instead of wrapping negative")
	q.Page = math.MaxInt
	assert.Equal(t, int64(math.MaxInt64), q.Skip())
}

func TestPlayerPageResponse(t *testing.T) {
	page := &PlayerPage{Total: 10, Page: 6, Limit: 2}
	resp := page.Response()

	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, int64(10), resp.Total)
	assert.Equal(t, int64(5), resp.Pagination.Pages)
	require.NotNil(t, resp.Data)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"data":[]`)
}

func TestPlayerPagePages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{10, 10, 1},
		{11, 10, 2},
		{10, 2, 5},
		{5, 0, 0},
	}
	for _, tt := range tests {
		p := &PlayerPage{Total: tt.total, Limit: tt.limit}
		assert.Equal(t, tt.want, p.Pages(), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestPlayerStatsJSON(t *testing.T) {
	b, err := json.Marshal(PlayerStats{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"overview":{},"positions":[]}`, string(b))

	b, err = json.Marshal(PlayerStats{
		Overview:  &OverviewStats{TotalPlayers: 1, MaxScoutPoints: 79},
		Positions: []PositionStats{{Position: PositionForward, Count: 1, AvgScoutPoints: 79}},
	})
	require.NoError(t, err)

	var out struct {
		Overview  OverviewStats   `json:"overview"`
		Positions []PositionStats `json:"positions"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, int64(1), out.Overview.TotalPlayers)
	assert.Equal(t, PositionForward, out.Positions[0].Position)
}

func TestPlayerStatsUnmarshalEmptyOverview(t *testing.T) {
	var empty PlayerStats
	require.NoError(t, json.Unmarshal([]byte(`{"overview":{},"positions":[]}`), &empty))
	assert.Nil(t, empty.Overview)
	assert.Empty(t, empty.Positions)

	var full PlayerStats
	require.NoError(t, json.Unmarshal([]byte(`{"overview":{"totalPlayers":2,"maxScoutPoints":79},"positions":[{"position":"Forward","count":2}]}`), &full))
	require.NotNil(t, full.Overview)
	assert.Equal(t, int64(2), full.Overview.TotalPlayers)
	assert.Equal(t, int64(2), full.Positions[0].Count)
}
