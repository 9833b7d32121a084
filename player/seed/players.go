// Package seed holds the sample roster used to populate a fresh deployment.
package seed

import "github.com/naijascout/scout-services/shared/models"

type sample struct {
	name     string
	position models.Position
	age      int
	club     string

	goals, assists, interactions, matches, minutes int

	pace, shooting, passing, dribbling, defending, physical int
}

var samples = []sample{
	{"Victor Osimhen", models.PositionForward, 24, "Napoli", 26, 4, 45, 32, 2880, 89, 85, 64, 78, 35, 82},
	{"Samuel Chukwueze", models.PositionForward, 24, "AC Milan", 6, 3, 28, 25, 1800, 87, 72, 68, 84, 42, 65},
	{"Wilfred Ndidi", models.PositionMidfielder, 26, "Leicester City", 2, 1, 35, 28, 2520, 65, 58, 72, 68, 85, 82},
	{"Alex Iwobi", models.PositionMidfielder, 27, "Fulham", 5, 7, 42, 30, 2700, 76, 68, 78, 75, 62, 70},
	{"William Troost-Ekong", models.PositionDefender, 30, "PAOK", 3, 1, 25, 26, 2340, 58, 45, 65, 52, 82, 85},
	{"Kelechi Iheanacho", models.PositionForward, 27, "Leicester City", 8, 5, 38, 22, 1584, 72, 78, 70, 75, 45, 68},
	{"Frank Onyeka", models.PositionMidfielder, 25, "Brentford", 1, 2, 32, 24, 1920, 75, 55, 68, 70, 78, 80},
	{"Calvin Bassey", models.PositionDefender, 23, "Fulham", 1, 2, 28, 25, 2250, 72, 42, 68, 65, 78, 82},
	{"Ademola Lookman", models.PositionForward, 26, "Atalanta", 13, 6, 40, 29, 2610, 84, 75, 70, 82, 48, 65},
	{"Stanley Nwabili", models.PositionGoalkeeper, 27, "Chippa United", 0, 0, 15, 20, 1800, 45, 25, 55, 30, 85, 75},
}

// Players returns fresh create payloads for the sample roster. Scout points
// are left to the service.
func Players() []*models.PlayerInput {
	out := make([]*models.PlayerInput, 0, len(samples))
	for _, s := range samples {
		out = append(out, s.input())
	}
	return out
}

func (s sample) input() *models.PlayerInput {
	position := string(s.position)
	status := string(models.StatusActive)
	return &models.PlayerInput{
		Name:        ptr(s.name),
		Position:    &position,
		Age:         models.NumberOf(s.age),
		Nationality: ptr(models.DefaultNationality),
		Club:        ptr(s.club),
		Engagement: &models.EngagementInput{
			Goals:        models.NumberOf(s.goals),
			Assists:      models.NumberOf(s.assists),
			Interactions: models.NumberOf(s.interactions),
			Matches:      models.NumberOf(s.matches),
			Minutes:      models.NumberOf(s.minutes),
		},
		Stats: &models.AttributesInput{
			Pace:      models.NumberOf(s.pace),
			Shooting:  models.NumberOf(s.shooting),
			Passing:   models.NumberOf(s.passing),
			Dribbling: models.NumberOf(s.dribbling),
			Defending: models.NumberOf(s.defending),
			Physical:  models.NumberOf(s.physical),
		},
		Status: &status,
		Image:  ptr(models.DefaultImage),
	}
}

func ptr(s string) *string { return &s }
