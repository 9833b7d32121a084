package store

import (
	"context"
	"testing"
	"time"

	"github.com/naijascout/scout-services/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func playerDoc(id primitive.ObjectID, name string, scoutPoints int) bson.D {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "position", Value: "Forward"},
		{Key: "age", Value: 24},
		{Key: "nationality", Value: "Nigerian"},
		{Key: "engagement", Value: bson.D{
			{Key: "goals", Value: 26},
			{Key: "assists", Value: 4},
			{Key: "interactions", Value: 45},
		}},
		{Key: "stats", Value: bson.D{{Key: "pace", Value: 89}}},
		{Key: "scoutPoints", Value: scoutPoints},
		{Key: "status", Value: "active"},
		{Key: "image", Value: "/avatar-icon.png"},
		{Key: "createdAt", Value: now},
		{Key: "updatedAt", Value: now},
	}
}

func TestMongoPlayerStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns id and timestamps", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Player{Name: "Victor Osimhen", ScoutPoints: 79}
		require.NoError(mt, s.CreatePlayer(ctx, p))
		assert.False(mt, p.ID.IsZero())
		assert.False(mt, p.CreatedAt.IsZero())
		assert.Equal(mt, p.CreatedAt, p.UpdatedAt)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := s.CreatePlayer(ctx, &models.Player{Name: "Dup"})
		assert.ErrorIs(mt, err, ErrDuplicatePlayer)
	})

	mt.Run("get found", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, playerDoc(id, "Victor Osimhen", 79)))

		p, err := s.GetPlayer(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, id, p.ID)
		assert.Equal(mt, "Victor Osimhen", p.Name)
		assert.Equal(mt, 79, p.ScoutPoints)
		assert.Equal(mt, 89, p.Attributes.Pace)
		assert.True(mt, p.HasValidScoutPoints())
	})

	mt.Run("get missing", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := s.GetPlayer(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrPlayerNotFound)
	})

	mt.Run("update returns the new document", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: playerDoc(id, "Victor Osimhen", 79)},
		})

		p, err := s.UpdatePlayer(ctx, id, PlayerUpdate{
			Fields: &models.PlayerFields{
				Name:       "Victor Osimhen",
				Position:   models.PositionForward,
				Age:        24,
				Engagement: models.EngagementFields{Goals: 26, Assists: 4, Interactions: 45},
			},
			ScoutPoints: 79,
		})
		require.NoError(mt, err)
		assert.Equal(mt, id, p.ID)
		assert.Equal(mt, 79, p.ScoutPoints)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := s.UpdatePlayer(ctx, primitive.NewObjectID(), PlayerUpdate{Fields: &models.PlayerFields{}})
		assert.ErrorIs(mt, err, ErrPlayerNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		assert.NoError(mt, s.DeletePlayer(ctx, primitive.NewObjectID()))
		assert.ErrorIs(mt, s.DeletePlayer(ctx, primitive.NewObjectID()), ErrPlayerNotFound)
	})

	mt.Run("list returns page and total", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		ns := namespace(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: 10}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				playerDoc(primitive.NewObjectID(), "Ademola Lookman", 65),
				playerDoc(primitive.NewObjectID(), "Alex Iwobi", 61),
			),
		)

		q := models.DefaultPlayerQuery()
		q.Limit = 2
		items, total, err := s.ListPlayers(ctx, q)
		require.NoError(mt, err)
		assert.Equal(mt, int64(10), total)
		require.Len(mt, items, 2)
		assert.Equal(mt, "Ademola Lookman", items[0].Name)
	})

	mt.Run("list past the end only counts", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		// No find response is queued: a find here would fail the test.
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: 10}}))

		q := models.DefaultPlayerQuery()
		q.Page = 100000000000000000
		q.Limit = models.MaxLimit
		items, total, err := s.ListPlayers(ctx, q)
		require.NoError(mt, err)
		assert.Equal(mt, int64(10), total)
		assert.Empty(mt, items)
	})

	mt.Run("overview empty", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		overview, err := s.Overview(ctx)
		require.NoError(mt, err)
		assert.Nil(mt, overview)
	})

	mt.Run("overview", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalPlayers", Value: 10},
			{Key: "avgScoutPoints", Value: 44.5},
			{Key: "maxScoutPoints", Value: 79},
			{Key: "totalGoals", Value: 65},
			{Key: "totalAssists", Value: 31},
			{Key: "totalInteractions", Value: 328},
			{Key: "avgAge", Value: 25.9},
		}))

		overview, err := s.Overview(ctx)
		require.NoError(mt, err)
		require.NotNil(mt, overview)
		assert.Equal(mt, int64(10), overview.TotalPlayers)
		assert.Equal(mt, 79, overview.MaxScoutPoints)
		assert.InDelta(mt, 44.5, overview.AvgScoutPoints, 1e-9)
	})

	mt.Run("position breakdown", func(mt *mtest.T) {
		s := NewMongoPlayerStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Defender"}, {Key: "count", Value: 2}, {Key: "avgScoutPoints", Value: 30.0}},
			bson.D{{Key: "_id", Value: "Forward"}, {Key: "count", Value: 4}, {Key: "avgScoutPoints", Value: 60.5}},
		))

		positions, err := s.PositionBreakdown(ctx)
		require.NoError(mt, err)
		require.Len(mt, positions, 2)
		assert.Equal(mt, models.PositionDefender, positions[0].Position)
		assert.Equal(mt, int64(4), positions[1].Count)
	})
}

func TestUpdateDocument(t *testing.T) {
	club := "Napoli"
	pace := 90
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := updateDocument(PlayerUpdate{
		Fields: &models.PlayerFields{
			Name:       "Victor Osimhen",
			Position:   models.PositionForward,
			Age:        24,
			Club:       &club,
			Engagement: models.EngagementFields{Goals: 26, Assists: 4, Interactions: 45},
			Attributes: models.AttributeFields{Pace: &pace},
		},
		ScoutPoints: 79,
	}, now)

	set, ok := doc["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 79, set["scoutPoints"])
	assert.Equal(t, now, set["updatedAt"])
	assert.Equal(t, "Napoli", set["club"])
	assert.Equal(t, 90, set["stats.pace"])
	assert.NotContains(t, set, "stats.shooting", "absent optional fields keep their stored value")
	assert.NotContains(t, set, "nationality")
	assert.NotContains(t, set, "engagement.matches")
	assert.NotContains(t, set, "createdAt")
}

func TestSortDocument(t *testing.T) {
	tests := []struct {
		sort models.Sort
		want bson.D
	}{
		{
			models.Sort{Field: models.SortByScoutPoints, Order: models.SortDesc},
			bson.D{{Key: "scoutPoints", Value: -1}, {Key: "_id", Value: 1}},
		},
		{
			models.Sort{Field: models.SortByName, Order: models.SortAsc},
			bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}},
		},
		{
			models.Sort{Field: models.SortByStatus, Order: models.SortDesc},
			bson.D{{Key: "status", Value: -1}, {Key: "_id", Value: 1}},
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sortDocument(tt.sort))
	}
}

func TestListFilter(t *testing.T) {
	assert.Empty(t, listFilter(models.PlayerFilter{}))

	gk := models.PositionGoalkeeper
	signed := models.StatusSigned
	assert.Equal(t, bson.M{"position": gk, "status": signed}, listFilter(models.PlayerFilter{Position: &gk, Status: &signed}))
}
