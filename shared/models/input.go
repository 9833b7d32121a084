// shared/models/input.go
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a JSON scalar destined for an integer field. It accepts numbers
// and numeric strings and keeps the raw text, so a bad value is reported
// against its own field instead of failing the whole decode.
type Number string

// NumberOf wraps an int for building inputs in code.
func NumberOf(v int) *Number {
	n := Number(strconv.Itoa(v))
	return &n
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*n = Number(s)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if _, err := n.Int(); err == nil {
		return []byte(strings.TrimSpace(string(n))), nil
	}
	return json.Marshal(string(n))
}

// Int parses the value as a base-10 integer.
func (n Number) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(n)))
}

// PlayerInput is the raw create/update body as decoded from JSON.
// Pointer fields distinguish "absent" from zero values. There is no
// scoutPoints field, so a client-supplied value is dropped on decode.
type PlayerInput struct {
	Name        *string          `json:"name,omitempty"`
	Position    *string          `json:"position,omitempty"`
	Age         *Number          `json:"age,omitempty"`
	Nationality *string          `json:"nationality,omitempty"`
	Club        *string          `json:"club,omitempty"`
	Engagement  *EngagementInput `json:"engagement,omitempty"`
	Attributes  *AttributesInput `json:"attributes,omitempty"`
	Stats       *AttributesInput `json:"stats,omitempty"` // original name of the attributes group
	Status      *string          `json:"status,omitempty"`
	Image       *string          `json:"image,omitempty"`
}

type EngagementInput struct {
	Goals        *Number `json:"goals,omitempty"`
	Assists      *Number `json:"assists,omitempty"`
	Interactions *Number `json:"interactions,omitempty"`
	Matches      *Number `json:"matches,omitempty"`
	Minutes      *Number `json:"minutes,omitempty"`
}

type AttributesInput struct {
	Pace      *Number `json:"pace,omitempty"`
	Shooting  *Number `json:"shooting,omitempty"`
	Passing   *Number `json:"passing,omitempty"`
	Dribbling *Number `json:"dribbling,omitempty"`
	Defending *Number `json:"defending,omitempty"`
	Physical  *Number `json:"physical,omitempty"`
}

// PlayerFields is a validated, normalized create/update payload.
// Required fields are plain values; optional ones stay nil when absent.
type PlayerFields struct {
	Name        string
	Position    Position
	Age         int
	Nationality *string
	Club        *string
	Engagement  EngagementFields
	Attributes  AttributeFields
	Status      *Status
	Image       *string
}

type EngagementFields struct {
	Goals        int
	Assists      int
	Interactions int
	Matches      *int
	Minutes      *int
}

type AttributeFields struct {
	Pace      *int
	Shooting  *int
	Passing   *int
	Dribbling *int
	Defending *int
	Physical  *int
}

// ScoutPoints computes the metric for the payload. Goals, assists and
// interactions are required, so the payload alone determines the value.
func (f *PlayerFields) ScoutPoints() int {
	return ComputeScoutPoints(Engagement{
		Goals:        f.Engagement.Goals,
		Assists:      f.Engagement.Assists,
		Interactions: f.Engagement.Interactions,
	})
}

// NewPlayer builds an unsaved player from the payload, filling defaults for
// absent optional fields. ID and timestamps are left for the store.
func (f *PlayerFields) NewPlayer() *Player {
	p := &Player{
		Nationality: DefaultNationality,
		Attributes:  DefaultAttributes(),
		Status:      DefaultStatus,
		Image:       DefaultImage,
	}
	f.ApplyTo(p)
	return p
}

// ApplyTo overwrites p with every field present in the payload. Scout points
// are left to the caller.
func (f *PlayerFields) ApplyTo(p *Player) {
	p.Name = f.Name
	p.Position = f.Position
	p.Age = f.Age
	if f.Nationality != nil {
		p.Nationality = *f.Nationality
	}
	if f.Club != nil {
		p.Club = *f.Club
	}
	p.Engagement.Goals = f.Engagement.Goals
	p.Engagement.Assists = f.Engagement.Assists
	p.Engagement.Interactions = f.Engagement.Interactions
	setInt(&p.Engagement.Matches, f.Engagement.Matches)
	setInt(&p.Engagement.Minutes, f.Engagement.Minutes)
	setInt(&p.Attributes.Pace, f.Attributes.Pace)
	setInt(&p.Attributes.Shooting, f.Attributes.Shooting)
	setInt(&p.Attributes.Passing, f.Attributes.Passing)
	setInt(&p.Attributes.Dribbling, f.Attributes.Dribbling)
	setInt(&p.Attributes.Defending, f.Attributes.Defending)
	setInt(&p.Attributes.Physical, f.Attributes.Physical)
	if f.Status != nil {
		p.Status = *f.Status
	}
	if f.Image != nil {
		p.Image = *f.Image
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
