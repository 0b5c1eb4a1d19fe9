package brackets

import "context"

type DoubleEliminationGenerator struct{}

func NewDoubleEliminationGenerator() Generator {
	return &DoubleEliminationGenerator{}
}

func (g *DoubleEliminationGenerator) Name() string {
	return "DoubleElimination"
}

// Generate builds a winners bracket plus the algebraically derived losers
// bracket. For a bracket of size 2^k the winners bracket has k rounds and the
// losers bracket 2(k-1): round pairs that first receive a wave of new
// winners-bracket losers and then play down.
//
// The grand final between the winners-bracket champion and the losers-bracket
// champion is not modeled; constructing that extra match is the caller's
// responsibility. Up to that point every edge is wired, so the winners final
// resolves first-place and the losers final second-place provisionally.
func (g *DoubleEliminationGenerator) Generate(_ context.Context, params GenerateParams) (*Bracket, error) {
	n := len(params.Participants)
	if n < 2 {
		return nil, ErrNotEnoughParticipants
	}

	size := NextPowerOfTwo(n)
	winnersRounds := log2(size)
	slots := PlaceToSlots(sortBySeed(params.Participants), size)

	matches := buildEliminationRounds(BracketWinners, slots, winnersRounds)
	matches[len(matches)-1].WinnerTo = placeAt(PlacementFirst)

	losersRounds := 0
	if winnersRounds > 1 {
		losersRounds = (winnersRounds - 1) * 2
		losers := buildLosersRounds(size, losersRounds)
		wireWinnersDrops(matches)
		matches = append(matches, losers...)
	} else {
		// Two participants: no losers bracket, the single match decides it.
		matches[len(matches)-1].LoserTo = placeAt(PlacementSecond)
	}

	assignPositions(matches)
	if err := PropagateByes(matches); err != nil {
		return nil, err
	}

	return &Bracket{
		Matches: matches,
		Totals:  Totals{WinnersRounds: winnersRounds, LosersRounds: losersRounds, BracketSize: size},
	}, nil
}

// losersRoundSize returns the match count of losers round r for a given
// bracket size. Rounds come in pairs of equal size (receive a wave, then play
// down): size/4, size/4, size/8, size/8, ... with a floor of one match.
func losersRoundSize(bracketSize, r int) int {
	count := bracketSize >> ((r+1)/2 + 1)
	if count < 1 {
		count = 1
	}
	return count
}

// buildLosersRounds creates the losers-bracket skeleton with its internal
// winner routing. Odd-round winners stay at the same match number and take
// slot 1 of the next round, where a winners-bracket loser lands in slot 2;
// even-round winners pair down two-per-match. Every losers-bracket loser is
// eliminated, and the last match resolves second place (the grand final is
// out of scope here).
func buildLosersRounds(bracketSize, losersRounds int) []*Match {
	matches := make([]*Match, 0, bracketSize-2)

	for r := 1; r <= losersRounds; r++ {
		count := losersRoundSize(bracketSize, r)
		for m := 1; m <= count; m++ {
			match := &Match{
				ID:          matchUID(BracketLosers, r, m),
				Round:       r,
				MatchNumber: m,
				Bracket:     BracketLosers,
				LoserTo:     placeAt(PlacementEliminated),
			}
			switch {
			case r == losersRounds:
				match.WinnerTo = placeAt(PlacementSecond)
			case r%2 == 1:
				match.WinnerTo = advanceTo(matchUID(BracketLosers, r+1, m), 1)
			default:
				match.WinnerTo = advanceTo(matchUID(BracketLosers, r+1, (m-1)/2+1), m%2+1)
			}
			matches = append(matches, match)
		}
	}

	return matches
}

// wireWinnersDrops attaches LoserTo edges from every winners-bracket match to
// its losers-bracket slot. Round-1 losers pair up two-per-match filling both
// slots of losers round 1; from round 2 on, each wave drops into slot 2 of
// the receiving losers round at the same match number.
func wireWinnersDrops(winners []*Match) {
	for _, m := range winners {
		if m.Bracket != BracketWinners {
			continue
		}
		switch {
		case m.Round == 1:
			m.LoserTo = advanceTo(matchUID(BracketLosers, 1, (m.MatchNumber-1)/2+1), m.MatchNumber%2+1)
		case m.Round == 2:
			m.LoserTo = advanceTo(matchUID(BracketLosers, 2, m.MatchNumber), 2)
		default:
			m.LoserTo = advanceTo(matchUID(BracketLosers, (m.Round-2)*2+2, m.MatchNumber), 2)
		}
	}
}
