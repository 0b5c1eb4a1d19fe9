package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropagateByesResolvesRuntimeWalkover(t *testing.T) {
	// LB-1-1 waits on two slots: one already dead (a generation-time bye had
	// no loser), the other just filled by a real result.
	loser := 105
	a, b := 201, 202
	matches := []*Match{
		{
			ID:              "LB-1-1",
			Round:           1,
			Bracket:         BracketLosers,
			Registration2ID: &loser,
			WinnerTo:        advanceTo("LB-2-1", 1),
			LoserTo:         placeAt(PlacementEliminated),
		},
		{
			ID:       "LB-2-1",
			Round:    2,
			Bracket:  BracketLosers,
			WinnerTo: placeAt(PlacementSecond),
			LoserTo:  placeAt(PlacementEliminated),
		},
		// Still-contested source keeps LB-2-1 slot 2 alive, so the walkover
		// must not cascade past LB-1-1.
		{
			ID:              "WB-2-1",
			Round:           2,
			Bracket:         BracketWinners,
			Registration1ID: &a,
			Registration2ID: &b,
			WinnerTo:        placeAt(PlacementFirst),
			LoserTo:         advanceTo("LB-2-1", 2),
		},
	}

	require.NoError(t, PropagateByes(matches))

	walkover := matches[0]
	assert.True(t, walkover.Played)
	assert.True(t, walkover.IsBye)
	require.NotNil(t, walkover.WinnerID)
	assert.Equal(t, loser, *walkover.WinnerID)

	next := matches[1]
	require.NotNil(t, next.Registration1ID)
	assert.Equal(t, loser, *next.Registration1ID)
	// LB-2-1 still waits on slot 2 even though slot 1 arrived by walkover.
	assert.False(t, next.Played)
}

func TestPropagateByesLeavesContestedMatchesAlone(t *testing.T) {
	a, b := 1, 2
	matches := []*Match{
		{ID: "M-1-1", Round: 1, Registration1ID: &a, Registration2ID: &b, WinnerTo: placeAt(PlacementFirst)},
	}

	require.NoError(t, PropagateByes(matches))
	assert.False(t, matches[0].Played)
	assert.Nil(t, matches[0].WinnerID)
}

func TestPropagateByesSkipsPlayedMatches(t *testing.T) {
	a := 9
	matches := []*Match{
		{ID: "M-1-1", Round: 1, Registration1ID: &a, Played: true, WinnerID: &a, WinnerTo: advanceTo("M-2-1", 1)},
		{ID: "M-2-1", Round: 2, WinnerTo: placeAt(PlacementFirst)},
	}

	require.NoError(t, PropagateByes(matches))
	// Already-played matches are not re-delivered.
	assert.Nil(t, matches[1].Registration1ID)
}

func TestPropagateByesRejectsUnknownTarget(t *testing.T) {
	a := 1
	matches := []*Match{
		{ID: "M-1-1", Round: 1, Registration1ID: &a, WinnerTo: advanceTo("M-9-9", 1)},
	}

	err := PropagateByes(matches)
	assert.ErrorIs(t, err, ErrInconsistentBracket)
}
