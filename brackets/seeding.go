package brackets

import "sort"

// ParticipantSeed pairs a registration with its optional seed. Seed 0 means
// unseeded; unseeded participants are placed after every seeded one, in the
// order they were passed in.
type ParticipantSeed struct {
	RegistrationID int `json:"registration_id"`
	Seed           int `json:"seed,omitempty"`
}

// NextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func NextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}

func log2(n int) int {
	r := 0
	for n > 1 {
		n /= 2
		r++
	}
	return r
}

// SeedPositions returns the canonical slot-to-seed table for a power-of-two
// bracket size, built by repeated doubling from [1 2]: each seed keeps its
// side of the draw and is paired against its mirror (the two seeds of every
// round-1 match sum to size+1), so the top seeds cannot meet before the
// final and byes land on the highest seeds.
func SeedPositions(bracketSize int) []int {
	positions := []int{1, 2}
	if bracketSize <= 1 {
		return []int{1}
	}
	for len(positions) < bracketSize {
		mirror := len(positions)*2 + 1
		doubled := make([]int, 0, len(positions)*2)
		for _, seed := range positions {
			doubled = append(doubled, seed, mirror-seed)
		}
		positions = doubled
	}
	return positions
}

// PlaceToSlots maps seed-sorted participants onto the bracket's slot table.
// Slots whose seed exceeds the participant count stay nil and become byes.
func PlaceToSlots(sorted []ParticipantSeed, bracketSize int) []*int {
	positions := SeedPositions(bracketSize)
	slots := make([]*int, bracketSize)
	for i, seed := range positions {
		if seed <= len(sorted) {
			id := sorted[seed-1].RegistrationID
			slots[i] = &id
		}
	}
	return slots
}

// sortBySeed orders participants for placement: seeded ones ascending by
// seed, then unseeded ones in their original order. The sort is stable so
// equal seeds also keep input order.
func sortBySeed(participants []ParticipantSeed) []ParticipantSeed {
	sorted := make([]ParticipantSeed, len(participants))
	copy(sorted, participants)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].Seed, sorted[j].Seed
		if si > 0 && sj > 0 {
			return si < sj
		}
		return si > 0 && sj == 0
	})
	return sorted
}
