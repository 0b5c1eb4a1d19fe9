package brackets

import "context"

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate builds a fully linked single-elimination bracket. Participants are
// sorted by seed, placed into a power-of-two slot table, paired round by
// round, and round-1 byes are auto-resolved forward. With
// HasThirdPlaceMatch set and exactly two semifinals, one extra match is
// appended in the final round; the caller wires the semifinal losers into it
// once they are known, since single elimination carries no loser-routing
// graph.
func (g *SingleEliminationGenerator) Generate(_ context.Context, params GenerateParams) (*Bracket, error) {
	n := len(params.Participants)
	if n < 2 {
		return nil, ErrNotEnoughParticipants
	}

	size := NextPowerOfTwo(n)
	rounds := log2(size)
	slots := PlaceToSlots(sortBySeed(params.Participants), size)

	matches := buildEliminationRounds("", slots, rounds)
	final := matches[len(matches)-1]
	final.WinnerTo = placeAt(PlacementFirst)

	if params.HasThirdPlaceMatch && rounds >= 2 {
		third := &Match{
			ID:           matchUID("", rounds, 2),
			Round:        rounds,
			MatchNumber:  2,
			IsThirdPlace: true,
			WinnerTo:     placeAt(PlacementThird),
		}
		matches = append(matches, third)
	}

	assignPositions(matches)
	if err := PropagateByes(matches); err != nil {
		return nil, err
	}

	return &Bracket{
		Matches: matches,
		Totals:  Totals{WinnersRounds: rounds, BracketSize: size},
	}, nil
}

// buildEliminationRounds creates the round-by-round match skeleton for one
// elimination bracket: round 1 from the slot table, later rounds empty, and
// every non-final match linked to slot 1 or 2 of its successor by parity of
// its position. The final's WinnerTo is left for the caller to decide.
func buildEliminationRounds(bracket BracketType, slots []*int, rounds int) []*Match {
	matches := make([]*Match, 0, len(slots)-1)

	count := len(slots) / 2
	for r := 1; r <= rounds; r++ {
		for i := 0; i < count; i++ {
			m := &Match{
				ID:          matchUID(bracket, r, i+1),
				Round:       r,
				MatchNumber: i + 1,
				Bracket:     bracket,
			}
			if r == 1 {
				m.Registration1ID = slots[2*i]
				m.Registration2ID = slots[2*i+1]
			}
			if r < rounds {
				m.WinnerTo = advanceTo(matchUID(bracket, r+1, i/2+1), i%2+1)
			}
			matches = append(matches, m)
		}
		count /= 2
	}

	return matches
}
