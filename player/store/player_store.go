// player/store/player_store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/naijascout/scout-services/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoPlayerStore represents the MongoDB data store for scouted players.
type MongoPlayerStore struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoPlayerStore creates a new MongoPlayerStore over the players collection.
func NewMongoPlayerStore(collection *mongo.Collection) *MongoPlayerStore {
	return &MongoPlayerStore{
		collection: collection,
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// EnsureIndexes creates the secondary indexes used by list filters and sorts.
func (ps *MongoPlayerStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "position", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "scoutPoints", Value: -1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}
	if _, err := ps.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create player indexes: %w", err)
	}
	return nil
}

// CreatePlayer inserts a new player document. The id and both timestamps are assigned here.
func (ps *MongoPlayerStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	now := ps.now()
	player.ID = primitive.NewObjectID()
	player.CreatedAt = now
	player.UpdatedAt = now

	_, err := ps.collection.InsertOne(ctx, player)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", ErrDuplicatePlayer, err)
		}
		return fmt.Errorf("failed to create player %s: %w", player.Name, err)
	}
	return nil
}

// GetPlayer retrieves a player by id.
func (ps *MongoPlayerStore) GetPlayer(ctx context.Context, id primitive.ObjectID) (*models.Player, error) {
	var player models.Player
	err := ps.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&player)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", id.Hex(), err)
	}
	return &player, nil
}

// UpdatePlayer sets every field present in the update, the recomputed scout
// points and updatedAt in one findAndModify, and returns the document after the change.
func (ps *MongoPlayerStore) UpdatePlayer(ctx context.Context, id primitive.ObjectID, upd PlayerUpdate) (*models.Player, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var player models.Player
	err := ps.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, updateDocument(upd, ps.now()), opts).Decode(&player)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlayerNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicatePlayer, err)
		}
		return nil, fmt.Errorf("failed to update player %s: %w", id.Hex(), err)
	}
	return &player, nil
}

func updateDocument(upd PlayerUpdate, now time.Time) bson.M {
	f := upd.Fields
	set := bson.M{
		"name":                    f.Name,
		"position":                f.Position,
		"age":                     f.Age,
		"engagement.goals":        f.Engagement.Goals,
		"engagement.assists":      f.Engagement.Assists,
		"engagement.interactions": f.Engagement.Interactions,
		"scoutPoints":             upd.ScoutPoints,
		"updatedAt":               now,
	}
	optional := map[string]*int{
		"engagement.matches": f.Engagement.Matches,
		"engagement.minutes": f.Engagement.Minutes,
		"stats.pace":         f.Attributes.Pace,
		"stats.shooting":     f.Attributes.Shooting,
		"stats.passing":      f.Attributes.Passing,
		"stats.dribbling":    f.Attributes.Dribbling,
		"stats.defending":    f.Attributes.Defending,
		"stats.physical":     f.Attributes.Physical,
	}
	for key, val := range optional {
		if val != nil {
			set[key] = *val
		}
	}
	if f.Nationality != nil {
		set["nationality"] = *f.Nationality
	}
	if f.Club != nil {
		set["club"] = *f.Club
	}
	if f.Status != nil {
		set["status"] = *f.Status
	}
	if f.Image != nil {
		set["image"] = *f.Image
	}
	return bson.M{"$set": set}
}

// DeletePlayer permanently removes a player.
func (ps *MongoPlayerStore) DeletePlayer(ctx context.Context, id primitive.ObjectID) error {
	res, err := ps.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// ListPlayers runs the filtered, sorted page query and a count over the same filter.
func (ps *MongoPlayerStore) ListPlayers(ctx context.Context, q models.PlayerQuery) ([]models.Player, int64, error) {
	filter := listFilter(q.Filter)

	total, err := ps.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count players: %w", err)
	}
	skip := q.Skip()
	if skip >= total {
		return []models.Player{}, total, nil
	}

	opts := options.Find().
		SetSort(sortDocument(q.Sort)).
		SetSkip(skip).
		SetLimit(int64(q.Limit))

	cursor, err := ps.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find players: %w", err)
	}
	defer cursor.Close(ctx)

	players := make([]models.Player, 0, q.Limit)
	if err = cursor.All(ctx, &players); err != nil {
		return nil, 0, fmt.Errorf("failed to decode players: %w", err)
	}
	return players, total, nil
}

func listFilter(f models.PlayerFilter) bson.M {
	filter := bson.M{}
	if f.Position != nil {
		filter["position"] = *f.Position
	}
	if f.Status != nil {
		filter["status"] = *f.Status
	}
	return filter
}

// sortKey maps the closed SortField set onto document keys. Raw request
// values never reach the sort document.
func sortKey(f models.SortField) string {
	switch f {
	case models.SortByAge:
		return "age"
	case models.SortByName:
		return "name"
	case models.SortByPosition:
		return "position"
	case models.SortByStatus:
		return "status"
	default:
		return "scoutPoints"
	}
}

func sortDocument(s models.Sort) bson.D {
	dir := -1
	if s.Order == models.SortAsc {
		dir = 1
	}
	return bson.D{
		{Key: sortKey(s.Field), Value: dir},
		{Key: "_id", Value: 1},
	}
}

// Overview performs a single-group aggregation over every player.
func (ps *MongoPlayerStore) Overview(ctx context.Context) (*models.OverviewStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalPlayers", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avgScoutPoints", Value: bson.D{{Key: "$avg", Value: "$scoutPoints"}}},
			{Key: "maxScoutPoints", Value: bson.D{{Key: "$max", Value: "$scoutPoints"}}},
			{Key: "totalGoals", Value: bson.D{{Key: "$sum", Value: "$engagement.goals"}}},
			{Key: "totalAssists", Value: bson.D{{Key: "$sum", Value: "$engagement.assists"}}},
			{Key: "totalInteractions", Value: bson.D{{Key: "$sum", Value: "$engagement.interactions"}}},
			{Key: "avgAge", Value: bson.D{{Key: "$avg", Value: "$age"}}},
		}}},
	}

	cursor, err := ps.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error running player overview aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.OverviewStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding player overview aggregation: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// PositionBreakdown groups players by position with a count and mean scout points.
func (ps *MongoPlayerStore) PositionBreakdown(ctx context.Context) ([]models.PositionStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$position"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avgScoutPoints", Value: bson.D{{Key: "$avg", Value: "$scoutPoints"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := ps.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error running position aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	positions := []models.PositionStats{}
	if err := cursor.All(ctx, &positions); err != nil {
		return nil, fmt.Errorf("error decoding position aggregation: %w", err)
	}
	return positions, nil
}

// Ping checks that the primary is reachable.
func (ps *MongoPlayerStore) Ping(ctx context.Context) error {
	return ps.collection.Database().Client().Ping(ctx, readpref.Primary())
}
