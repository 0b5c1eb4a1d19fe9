package brackets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleEliminationTwoParticipants(t *testing.T) {
	g := NewDoubleEliminationGenerator()
	bracket, err := g.Generate(context.Background(), GenerateParams{
		Participants: seededParticipants(100, 2),
	})
	require.NoError(t, err)

	require.Len(t, bracket.Matches, 1)
	assert.Equal(t, 0, bracket.Totals.LosersRounds)

	final := bracket.Matches[0]
	assert.Equal(t, "WB-1-1", final.ID)
	assert.Equal(t, PlacementFirst, final.WinnerTo.Placement)
	assert.Equal(t, PlacementSecond, final.LoserTo.Placement)
}

func TestDoubleEliminationEightParticipantsShape(t *testing.T) {
	g := NewDoubleEliminationGenerator()
	bracket, err := g.Generate(context.Background(), GenerateParams{
		Participants: seededParticipants(100, 8),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, bracket.Totals.WinnersRounds)
	assert.Equal(t, 4, bracket.Totals.LosersRounds)
	// 7 winners matches plus 2+2+1+1 losers matches.
	require.Len(t, bracket.Matches, 13)

	byID := bracket.ByID()

	// Round-1 losers pair up two per losers match.
	assert.Equal(t, advanceTo("LB-1-1", 1), byID["WB-1-1"].LoserTo)
	assert.Equal(t, advanceTo("LB-1-1", 2), byID["WB-1-2"].LoserTo)
	assert.Equal(t, advanceTo("LB-1-2", 1), byID["WB-1-3"].LoserTo)
	assert.Equal(t, advanceTo("LB-1-2", 2), byID["WB-1-4"].LoserTo)

	// Later waves drop into slot 2 at the same match number.
	assert.Equal(t, advanceTo("LB-2-1", 2), byID["WB-2-1"].LoserTo)
	assert.Equal(t, advanceTo("LB-2-2", 2), byID["WB-2-2"].LoserTo)
	assert.Equal(t, advanceTo("LB-4-1", 2), byID["WB-3-1"].LoserTo)

	// Odd losers rounds play into slot 1 of the next round; even rounds pair
	// down two per match.
	assert.Equal(t, advanceTo("LB-2-1", 1), byID["LB-1-1"].WinnerTo)
	assert.Equal(t, advanceTo("LB-2-2", 1), byID["LB-1-2"].WinnerTo)
	assert.Equal(t, advanceTo("LB-3-1", 2), byID["LB-2-1"].WinnerTo)
	assert.Equal(t, advanceTo("LB-3-1", 1), byID["LB-2-2"].WinnerTo)
	assert.Equal(t, advanceTo("LB-4-1", 1), byID["LB-3-1"].WinnerTo)

	last := byID["LB-4-1"]
	assert.Equal(t, PlacementSecond, last.WinnerTo.Placement)
	assert.Equal(t, PlacementEliminated, last.LoserTo.Placement)

	for _, m := range bracket.Matches {
		if m.Bracket == BracketLosers && m.ID != "LB-4-1" {
			assert.Equal(t, PlacementEliminated, m.LoserTo.Placement, "match %s", m.ID)
		}
	}
}

func TestDoubleEliminationLosersRoundSizes(t *testing.T) {
	// Size 16: rounds come in equal pairs 4,4,2,2,1,1.
	want := []int{4, 4, 2, 2, 1, 1}
	for r, count := range want {
		assert.Equal(t, count, losersRoundSize(16, r+1), "round %d", r+1)
	}
}

func TestDoubleEliminationSixteenParticipants(t *testing.T) {
	g := NewDoubleEliminationGenerator()
	bracket, err := g.Generate(context.Background(), GenerateParams{
		Participants: seededParticipants(200, 16),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, bracket.Totals.WinnersRounds)
	assert.Equal(t, 6, bracket.Totals.LosersRounds)
	// 15 winners matches plus 4+4+2+2+1+1 losers matches.
	require.Len(t, bracket.Matches, 29)

	byID := bracket.ByID()
	for _, m := range bracket.Matches {
		for _, adv := range []*Advancement{m.WinnerTo, m.LoserTo} {
			require.NotNil(t, adv, "match %s must route both outcomes somewhere", m.ID)
			if adv.IsPlacement() {
				continue
			}
			_, ok := byID[adv.MatchID]
			require.True(t, ok, "match %s routes to unknown %s", m.ID, adv.MatchID)
		}
	}
}

func TestDoubleEliminationAdjacentByesVoidLosersMatch(t *testing.T) {
	// With 5 participants in a size-8 bracket, WB-1-3 and WB-1-4 are both
	// byes, so LB-1-2 can never have an entrant. Its winner edge must go
	// dead so LB-2-2 only waits on the WB-2-2 loser.
	g := NewDoubleEliminationGenerator()
	bracket, err := g.Generate(context.Background(), GenerateParams{
		Participants: seededParticipants(100, 5),
	})
	require.NoError(t, err)

	byID := bracket.ByID()
	require.True(t, byID["WB-1-3"].IsBye)
	require.True(t, byID["WB-1-4"].IsBye)

	dead := byID["LB-1-2"]
	assert.False(t, dead.Played)
	assert.Nil(t, dead.Registration1ID)
	assert.Nil(t, dead.Registration2ID)
	assert.Nil(t, dead.WinnerID)

	// Replay the runtime path: WB-2-2 completes and its loser drops into
	// LB-2-2 slot 2. With LB-1-2 void, that must resolve as a walkover.
	wb22 := byID["WB-2-2"]
	require.NotNil(t, wb22.Registration1ID)
	require.NotNil(t, wb22.Registration2ID)
	winner, loser := *wb22.Registration1ID, *wb22.Registration2ID
	wb22.Played = true
	wb22.WinnerID = &winner
	target := byID[wb22.LoserTo.MatchID]
	require.Equal(t, "LB-2-2", target.ID)
	target.Registration2ID = &loser

	require.NoError(t, PropagateByes(bracket.Matches))

	lb22 := byID["LB-2-2"]
	assert.True(t, lb22.Played)
	assert.True(t, lb22.IsBye)
	require.NotNil(t, lb22.WinnerID)
	assert.Equal(t, loser, *lb22.WinnerID)
	// The walkover winner moves on into the next losers round.
	next := byID[lb22.WinnerTo.MatchID]
	require.Equal(t, "LB-3-1", next.ID)
	require.NotNil(t, next.Registration1ID)
	assert.Equal(t, loser, *next.Registration1ID)
}

func TestDoubleEliminationNineParticipantsVoidCascade(t *testing.T) {
	// Size 16 with 9 participants: WB-1-2 is the only contested round-1
	// match, every other round-1 match is a bye. Three of the four LB-1
	// matches have no possible entrant and must resolve nothing, while the
	// losers bracket stays consistent for the real entrants.
	g := NewDoubleEliminationGenerator()
	bracket, err := g.Generate(context.Background(), GenerateParams{
		Participants: seededParticipants(300, 9),
	})
	require.NoError(t, err)

	byID := bracket.ByID()
	for _, id := range []string{"LB-1-2", "LB-1-3", "LB-1-4"} {
		m := byID[id]
		require.NotNil(t, m, "missing %s", id)
		assert.False(t, m.Played, "%s has no entrant and must stay unplayed", id)
		assert.Nil(t, m.WinnerID, id)
		assert.Nil(t, m.Registration1ID, id)
		assert.Nil(t, m.Registration2ID, id)
	}

	// LB-1-1 still waits on the WB-1-2 loser.
	assert.False(t, byID["LB-1-1"].Played)

	// Nothing anywhere resolves with a winner but no occupant.
	for _, m := range bracket.Matches {
		if m.Played {
			require.NotNil(t, m.WinnerID, "played match %s has no winner", m.ID)
		}
	}
}

func TestDoubleEliminationByeProducesNoPhantomLoser(t *testing.T) {
	g := NewDoubleEliminationGenerator()
	bracket, err := g.Generate(context.Background(), GenerateParams{
		Participants: seededParticipants(100, 7),
	})
	require.NoError(t, err)

	byID := bracket.ByID()

	// WB-1-1 is the bye; its "loser" must never appear in the losers bracket.
	bye := byID["WB-1-1"]
	require.True(t, bye.IsBye)

	lb := byID["LB-1-1"]
	require.NotNil(t, lb)
	assert.Nil(t, lb.Registration1ID, "bye loser slot must stay empty")
	assert.False(t, lb.Played, "LB-1-1 still waits on the WB-1-2 loser")

	for _, m := range bracket.Matches {
		if m.Bracket != BracketLosers {
			continue
		}
		for _, slot := range []*int{m.Registration1ID, m.Registration2ID} {
			if slot != nil {
				assert.NotEqual(t, 101, *slot, "top seed cannot start in the losers bracket")
			}
		}
	}
}
