// shared/models/stats.go
package models

import (
	"bytes"
	"encoding/json"
)

// OverviewStats aggregates the whole player set.
type OverviewStats struct {
	TotalPlayers      int64   `bson:"totalPlayers" json:"totalPlayers"`
	AvgScoutPoints    float64 `bson:"avgScoutPoints" json:"avgScoutPoints"`
	MaxScoutPoints    int     `bson:"maxScoutPoints" json:"maxScoutPoints"`
	TotalGoals        int64   `bson:"totalGoals" json:"totalGoals"`
	TotalAssists      int64   `bson:"totalAssists" json:"totalAssists"`
	TotalInteractions int64   `bson:"totalInteractions" json:"totalInteractions"`
	AvgAge            float64 `bson:"avgAge" json:"avgAge"`
}

// PositionStats is one row of the per-position breakdown.
type PositionStats struct {
	Position       Position `bson:"_id" json:"position"`
	Count          int64    `bson:"count" json:"count"`
	AvgScoutPoints float64  `bson:"avgScoutPoints" json:"avgScoutPoints"`
}

// PlayerStats is the full aggregation result. Overview is nil when there are no players.
type PlayerStats struct {
	Overview  *OverviewStats  `json:"overview"`
	Positions []PositionStats `json:"positions"`
}

// MarshalJSON writes a nil Overview as {} and nil Positions as [].
func (s PlayerStats) MarshalJSON() ([]byte, error) {
	out := struct {
		Overview  interface{}     `json:"overview"`
		Positions []PositionStats `json:"positions"`
	}{
		Overview:  struct{}{},
		Positions: s.Positions,
	}
	if s.Overview != nil {
		out.Overview = s.Overview
	}
	if out.Positions == nil {
		out.Positions = []PositionStats{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reverses MarshalJSON, turning an empty overview back into nil.
func (s *PlayerStats) UnmarshalJSON(b []byte) error {
	var raw struct {
		Overview  json.RawMessage `json:"overview"`
		Positions []PositionStats `json:"positions"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Overview = nil
	s.Positions = raw.Positions

	overview := bytes.TrimSpace(raw.Overview)
	if len(overview) == 0 || bytes.Equal(overview, []byte("{}")) || bytes.Equal(overview, []byte("null")) {
		return nil
	}
	var o OverviewStats
	if err := json.Unmarshal(overview, &o); err != nil {
		return err
	}
	s.Overview = &o
	return nil
}
