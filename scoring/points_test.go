package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPoints(t *testing.T) {
	p1, p2 := MatchPoints(7, 7, 9, 2, 0)
	assert.Equal(t, 2, p1)
	assert.Equal(t, 0, p2)

	p1, p2 = MatchPoints(9, 7, 9, 3, 1)
	assert.Equal(t, 1, p1)
	assert.Equal(t, 3, p2)

	// Unknown winner scores nobody.
	p1, p2 = MatchPoints(42, 7, 9, 2, 0)
	assert.Zero(t, p1)
	assert.Zero(t, p2)
}

func TestSetPointsIgnoresDrawnSets(t *testing.T) {
	won1, won2 := SetPoints([]SetResult{
		{Score1: 11, Score2: 7},
		{Score1: 10, Score2: 10},
		{Score1: 9, Score2: 11},
	})
	assert.Equal(t, 1, won1)
	assert.Equal(t, 1, won2)
}

func TestMatchDeltas(t *testing.T) {
	sets := []SetResult{
		{Score1: 11, Score2: 7},
		{Score1: 9, Score2: 11},
		{Score1: 11, Score2: 5},
		{Score1: 11, Score2: 8},
	}

	d1, d2 := MatchDeltas(1, 1, 2, sets, 2, 0)

	assert.Equal(t, Delta{MatchesWon: 1, SetsWon: 3, SetsLost: 1, Points: 2}, d1)
	assert.Equal(t, Delta{MatchesLost: 1, SetsWon: 1, SetsLost: 3, Points: 0}, d2)
}

func TestMatchDeltasSidesMirror(t *testing.T) {
	sets := []SetResult{{Score1: 8, Score2: 11}, {Score1: 6, Score2: 11}}

	d1, d2 := MatchDeltas(2, 1, 2, sets, 3, 1)

	assert.Equal(t, Delta{MatchesLost: 1, SetsWon: 0, SetsLost: 2, Points: 1}, d1)
	assert.Equal(t, Delta{MatchesWon: 1, SetsWon: 2, SetsLost: 0, Points: 3}, d2)
}
