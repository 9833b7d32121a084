// shared/models/player.go
package models

import (
	"encoding/json"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Position is the pitch role a player is scouted for.
type Position string

const (
	PositionForward    Position = "Forward"
	PositionMidfielder Position = "Midfielder"
	PositionDefender   Position = "Defender"
	PositionGoalkeeper Position = "Goalkeeper"
)

// Positions lists every accepted position in declaration order.
var Positions = []Position{PositionForward, PositionMidfielder, PositionDefender, PositionGoalkeeper}

// Valid reports whether p is one of the known positions.
func (p Position) Valid() bool {
	switch p {
	case PositionForward, PositionMidfielder, PositionDefender, PositionGoalkeeper:
		return true
	}
	return false
}

// Status is where a player sits in the scouting pipeline.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusScouted  Status = "scouted"
	StatusSigned   Status = "signed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusScouted, StatusSigned:
		return true
	}
	return false
}

// Defaults applied when a create payload omits the optional fields.
const (
	DefaultPosition    = PositionForward
	DefaultNationality = "Nigerian"
	DefaultStatus      = StatusActive
	DefaultImage       = "/avatar-icon.png"
	DefaultAttribute   = 50
)

// Engagement holds the countable match and interaction metrics that feed scout points.
type Engagement struct {
	Goals        int `bson:"goals" json:"goals"`
	Assists      int `bson:"assists" json:"assists"`
	Interactions int `bson:"interactions" json:"interactions"`
	Matches      int `bson:"matches" json:"matches"`
	Minutes      int `bson:"minutes" json:"minutes"`
}

// Attributes holds the six 0-100 skill ratings.
type Attributes struct {
	Pace      int `bson:"pace" json:"pace"`
	Shooting  int `bson:"shooting" json:"shooting"`
	Passing   int `bson:"passing" json:"passing"`
	Dribbling int `bson:"dribbling" json:"dribbling"`
	Defending int `bson:"defending" json:"defending"`
	Physical  int `bson:"physical" json:"physical"`
}

// DefaultAttributes returns an attribute group with every rating at DefaultAttribute.
func DefaultAttributes() Attributes {
	return Attributes{
		Pace:      DefaultAttribute,
		Shooting:  DefaultAttribute,
		Passing:   DefaultAttribute,
		Dribbling: DefaultAttribute,
		Defending: DefaultAttribute,
		Physical:  DefaultAttribute,
	}
}

// Player represents a scouted athlete stored persistently in MongoDB.
// Document keys follow the camelCase names already used by the players collection.
type Player struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Position    Position           `bson:"position" json:"position"`
	Age         int                `bson:"age" json:"age"`
	Nationality string             `bson:"nationality" json:"nationality"`
	Club        string             `bson:"club,omitempty" json:"club,omitempty"`
	Engagement  Engagement         `bson:"engagement" json:"engagement"`
	Attributes  Attributes         `bson:"stats" json:"attributes"`
	ScoutPoints int                `bson:"scoutPoints" json:"scoutPoints"`
	Status      Status             `bson:"status" json:"status"`
	Image       string             `bson:"image" json:"image"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ComputeScoutPoints is the only place the scout points formula lives.
func ComputeScoutPoints(e Engagement) int {
	return e.Goals + 2*e.Assists + e.Interactions
}

// OverallRating is the rounded mean of the six attributes. It is never stored.
func (a Attributes) OverallRating() int {
	sum := a.Pace + a.Shooting + a.Passing + a.Dribbling + a.Defending + a.Physical
	return int(math.Round(float64(sum) / 6))
}

// OverallRating returns the player's derived overall rating.
func (p *Player) OverallRating() int {
	return p.Attributes.OverallRating()
}

// HasValidScoutPoints reports whether the stored scout points match the engagement group.
func (p *Player) HasValidScoutPoints() bool {
	return p.ScoutPoints == ComputeScoutPoints(p.Engagement)
}

// MarshalJSON adds the derived overallRating to the serialized player.
func (p Player) MarshalJSON() ([]byte, error) {
	type player Player
	return json.Marshal(struct {
		player
		OverallRating int `json:"overallRating"`
	}{
		player:        player(p),
		OverallRating: p.OverallRating(),
	})
}
