package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clubdesk/bracket-engine/models"
)

func TestApplyAccumulates(t *testing.T) {
	standing := models.RegistrationStanding{
		EventID:        1,
		RegistrationID: 7,
		MatchesWon:     2,
		SetsWon:        6,
		SetsLost:       3,
		Points:         4,
		Version:        3,
	}

	updated := Apply(standing, Delta{MatchesWon: 1, SetsWon: 3, SetsLost: 1, Points: 2})

	assert.Equal(t, 3, updated.MatchesWon)
	assert.Equal(t, 0, updated.MatchesLost)
	assert.Equal(t, 9, updated.SetsWon)
	assert.Equal(t, 4, updated.SetsLost)
	assert.Equal(t, 6, updated.Points)
	// Identity and version survive for the optimistic write.
	assert.Equal(t, 7, updated.RegistrationID)
	assert.Equal(t, 3, updated.Version)
	// Input is untouched.
	assert.Equal(t, 2, standing.MatchesWon)
}

func TestSortStandingsOrdering(t *testing.T) {
	standings := []*models.RegistrationStanding{
		{RegistrationID: 1, Points: 4, SetsWon: 6, SetsLost: 4, MatchesWon: 2},
		{RegistrationID: 2, Points: 6, SetsWon: 5, SetsLost: 5, MatchesWon: 3},
		{RegistrationID: 3, Points: 4, SetsWon: 7, SetsLost: 3, MatchesWon: 2},
		{RegistrationID: 4, Points: 4, SetsWon: 6, SetsLost: 4, MatchesWon: 3},
	}

	SortStandings(standings)

	ids := make([]int, len(standings))
	for i, s := range standings {
		ids[i] = s.RegistrationID
	}
	// Points first, then set difference, then matches won.
	assert.Equal(t, []int{2, 3, 4, 1}, ids)
}

func TestSortStandingsStableOnFullTies(t *testing.T) {
	standings := []*models.RegistrationStanding{
		{RegistrationID: 9, Points: 2},
		{RegistrationID: 5, Points: 2},
		{RegistrationID: 7, Points: 2},
	}

	SortStandings(standings)

	assert.Equal(t, 9, standings[0].RegistrationID)
	assert.Equal(t, 5, standings[1].RegistrationID)
	assert.Equal(t, 7, standings[2].RegistrationID)
}
