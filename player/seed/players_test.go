package seed

import (
	"testing"

	"github.com/naijascout/scout-services/player/validation"
	"github.com/naijascout/scout-services/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayersAreValid(t *testing.T) {
	players := Players()
	require.Len(t, players, 10)

	names := map[string]bool{}
	positions := map[models.Position]int{}
	for _, in := range players {
		fields, err := validation.Player(in)
		require.NoError(t, err, *in.Name)
		assert.False(t, names[fields.Name], "duplicate %s", fields.Name)
		names[fields.Name] = true
		positions[fields.Position]++
	}
	assert.Equal(t, map[models.Position]int{
		models.PositionForward:    4,
		models.PositionMidfielder: 3,
		models.PositionDefender:   2,
		models.PositionGoalkeeper: 1,
	}, positions)
}

func TestPlayersReturnsFreshCopies(t *testing.T) {
	a := Players()
	*a[0].Name = "Changed"
	assert.Equal(t, "Victor Osimhen", *Players()[0].Name)
}

func TestOsimhenScoutPoints(t *testing.T) {
	fields, err := validation.Player(Players()[0])
	require.NoError(t, err)
	assert.Equal(t, 79, fields.ScoutPoints())
	require.NotNil(t, fields.Attributes.Pace)
	assert.Equal(t, 89, *fields.Attributes.Pace)
}
