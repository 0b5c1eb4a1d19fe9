package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{
		0: 1,
		1: 1,
		2: 2,
		3: 4,
		4: 4,
		5: 8,
		8: 8,
		9: 16,
	}
	for n, want := range cases {
		assert.Equal(t, want, NextPowerOfTwo(n), "NextPowerOfTwo(%d)", n)
	}
}

func TestSeedPositions(t *testing.T) {
	assert.Equal(t, []int{1}, SeedPositions(1))
	assert.Equal(t, []int{1, 2}, SeedPositions(2))
	assert.Equal(t, []int{1, 4, 2, 3}, SeedPositions(4))
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, SeedPositions(8))
}

func TestSeedPositionsPairsSumToSizePlusOne(t *testing.T) {
	for _, size := range []int{2, 4, 8, 16, 32} {
		positions := SeedPositions(size)
		require.Len(t, positions, size)
		for i := 0; i < size; i += 2 {
			assert.Equal(t, size+1, positions[i]+positions[i+1],
				"size %d pair %d: seeds %d and %d", size, i/2, positions[i], positions[i+1])
		}
	}
}

func TestPlaceToSlotsLeavesByesOnHighSeeds(t *testing.T) {
	participants := make([]ParticipantSeed, 7)
	for i := range participants {
		participants[i] = ParticipantSeed{RegistrationID: 100 + i + 1, Seed: i + 1}
	}

	slots := PlaceToSlots(sortBySeed(participants), 8)
	require.Len(t, slots, 8)

	// Seed 8 does not exist, so the top seed's round-1 opponent slot is empty.
	require.NotNil(t, slots[0])
	assert.Equal(t, 101, *slots[0])
	assert.Nil(t, slots[1])

	filled := 0
	for _, s := range slots {
		if s != nil {
			filled++
		}
	}
	assert.Equal(t, 7, filled)
}

func TestSortBySeedUnseededKeepInputOrder(t *testing.T) {
	participants := []ParticipantSeed{
		{RegistrationID: 10},
		{RegistrationID: 11, Seed: 2},
		{RegistrationID: 12},
		{RegistrationID: 13, Seed: 1},
	}

	sorted := sortBySeed(participants)
	ids := make([]int, len(sorted))
	for i, p := range sorted {
		ids[i] = p.RegistrationID
	}
	assert.Equal(t, []int{13, 11, 10, 12}, ids)
	// Input untouched.
	assert.Equal(t, 10, participants[0].RegistrationID)
}
