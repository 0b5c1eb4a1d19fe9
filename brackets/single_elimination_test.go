package brackets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededParticipants(base, n int) []ParticipantSeed {
	participants := make([]ParticipantSeed, n)
	for i := range participants {
		participants[i] = ParticipantSeed{RegistrationID: base + i + 1, Seed: i + 1}
	}
	return participants
}

func TestSingleEliminationRejectsTooFewParticipants(t *testing.T) {
	g := NewSingleEliminationGenerator()

	_, err := g.Generate(context.Background(), GenerateParams{})
	assert.ErrorIs(t, err, ErrNotEnoughParticipants)

	_, err = g.Generate(context.Background(), GenerateParams{
		Participants: seededParticipants(100, 1),
	})
	assert.ErrorIs(t, err, ErrNotEnoughParticipants)
}

func TestSingleEliminationEightParticipants(t *testing.T) {
	g := NewSingleEliminationGenerator()
	bracket, err := g.Generate(context.Background(), GenerateParams{
		Participants: seededParticipants(100, 8),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, bracket.Totals.WinnersRounds)
	assert.Equal(t, 8, bracket.Totals.BracketSize)
	require.Len(t, bracket.Matches, 7)

	byID := bracket.ByID()

	// Round 1 pairs follow the seeding table: 1v8, 4v5, 2v7, 3v6.
	wantPairs := map[string][2]int{
		"M-1-1": {101, 108},
		"M-1-2": {104, 105},
		"M-1-3": {102, 107},
		"M-1-4": {103, 106},
	}
	for id, pair := range wantPairs {
		m := byID[id]
		require.NotNil(t, m, "missing match %s", id)
		require.NotNil(t, m.Registration1ID)
		require.NotNil(t, m.Registration2ID)
		assert.Equal(t, pair[0], *m.Registration1ID, "%s slot 1", id)
		assert.Equal(t, pair[1], *m.Registration2ID, "%s slot 2", id)
	}

	// Adjacent matches feed opposite slots of their successor.
	assert.Equal(t, advanceTo("M-2-1", 1), byID["M-1-1"].WinnerTo)
	assert.Equal(t, advanceTo("M-2-1", 2), byID["M-1-2"].WinnerTo)
	assert.Equal(t, advanceTo("M-3-1", 1), byID["M-2-1"].WinnerTo)
	assert.Equal(t, advanceTo("M-3-1", 2), byID["M-2-2"].WinnerTo)

	final := byID["M-3-1"]
	require.NotNil(t, final.WinnerTo)
	assert.True(t, final.WinnerTo.IsPlacement())
	assert.Equal(t, PlacementFirst, final.WinnerTo.Placement)
}

func TestSingleEliminationSevenParticipantsByePropagates(t *testing.T) {
	g := NewSingleEliminationGenerator()
	bracket, err := g.Generate(context.Background(), GenerateParams{
		Participants: seededParticipants(100, 7),
	})
	require.NoError(t, err)

	byID := bracket.ByID()

	// The top seed's round-1 match has no opponent and resolves immediately.
	bye := byID["M-1-1"]
	require.NotNil(t, bye)
	assert.True(t, bye.Played)
	assert.True(t, bye.IsBye)
	require.NotNil(t, bye.WinnerID)
	assert.Equal(t, 101, *bye.WinnerID)

	// The winner is already waiting in round 2.
	next := byID["M-2-1"]
	require.NotNil(t, next.Registration1ID)
	assert.Equal(t, 101, *next.Registration1ID)
	assert.False(t, next.Played)

	byes := 0
	for _, m := range bracket.Matches {
		if m.IsBye {
			byes++
		}
	}
	assert.Equal(t, 1, byes)
}

func TestSingleEliminationThirdPlaceMatch(t *testing.T) {
	g := NewSingleEliminationGenerator()
	bracket, err := g.Generate(context.Background(), GenerateParams{
		Participants:       seededParticipants(100, 8),
		HasThirdPlaceMatch: true,
	})
	require.NoError(t, err)
	require.Len(t, bracket.Matches, 8)

	third := bracket.ByID()["M-3-2"]
	require.NotNil(t, third)
	assert.True(t, third.IsThirdPlace)
	assert.Equal(t, 3, third.Round)
	require.NotNil(t, third.WinnerTo)
	assert.Equal(t, PlacementThird, third.WinnerTo.Placement)
	assert.Nil(t, third.Registration1ID)
	assert.Nil(t, third.Registration2ID)
}

func TestSingleEliminationRoutingIsConsistent(t *testing.T) {
	g := NewSingleEliminationGenerator()
	for _, n := range []int{2, 3, 5, 8, 13, 16, 32} {
		bracket, err := g.Generate(context.Background(), GenerateParams{
			Participants: seededParticipants(1000, n),
		})
		require.NoError(t, err, "n=%d", n)

		byID := bracket.ByID()
		positions := make(map[int]bool)
		for _, m := range bracket.Matches {
			assert.False(t, positions[m.BracketPosition], "n=%d duplicate position %d", n, m.BracketPosition)
			positions[m.BracketPosition] = true

			for _, adv := range []*Advancement{m.WinnerTo, m.LoserTo} {
				if adv == nil || adv.IsPlacement() {
					continue
				}
				target, ok := byID[adv.MatchID]
				require.True(t, ok, "n=%d match %s routes to unknown %s", n, m.ID, adv.MatchID)
				assert.Greater(t, target.Round, m.Round, "n=%d edge %s -> %s must move forward", n, m.ID, adv.MatchID)
			}
		}
	}
}
