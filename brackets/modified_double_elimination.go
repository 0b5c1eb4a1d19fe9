package brackets

import "context"

// ModifiedDoubleEliminationGenerator builds the losers bracket incrementally,
// one winners-bracket wave at a time, reordering entrants so that two
// participants who already met do not immediately re-meet. The reorder rule is
// a heuristic, not a proven guarantee for all bracket sizes; see
// reorderEntrants. Unlike the plain variant there is no grand final: the
// winners final resolves 1st/2nd and the last losers match 3rd/4th.
type ModifiedDoubleEliminationGenerator struct{}

func NewModifiedDoubleEliminationGenerator() Generator {
	return &ModifiedDoubleEliminationGenerator{}
}

func (g *ModifiedDoubleEliminationGenerator) Name() string {
	return "ModifiedDoubleElimination"
}

// entrant references the match a future losers-bracket participant comes out
// of: either as that match's loser (a fresh winners-bracket drop) or as its
// winner (a losers-bracket survivor).
type entrant struct {
	matchID string
	asLoser bool
}

func (g *ModifiedDoubleEliminationGenerator) Generate(_ context.Context, params GenerateParams) (*Bracket, error) {
	n := len(params.Participants)
	if n < 2 {
		return nil, ErrNotEnoughParticipants
	}

	size := NextPowerOfTwo(n)
	winnersRounds := log2(size)
	slots := PlaceToSlots(sortBySeed(params.Participants), size)

	winners := buildEliminationRounds(BracketWinners, slots, winnersRounds)
	final := winners[len(winners)-1]
	final.WinnerTo = placeAt(PlacementFirst)
	final.LoserTo = placeAt(PlacementSecond)

	byID := make(map[string]*Match, len(winners))
	winnersByRound := make(map[int][]*Match)
	for _, m := range winners {
		byID[m.ID] = m
		winnersByRound[m.Round] = append(winnersByRound[m.Round], m)
	}

	wire := func(e entrant, targetID string, slot int) {
		adv := advanceTo(targetID, slot)
		if e.asLoser {
			byID[e.matchID].LoserTo = adv
		} else {
			byID[e.matchID].WinnerTo = adv
		}
	}

	var losers []*Match
	losersRound := 0
	pairRound := func(entrants []entrant) []entrant {
		losersRound++
		next := make([]entrant, 0, len(entrants)/2+1)
		num := 0
		for i := 0; i+1 < len(entrants); i += 2 {
			num++
			m := &Match{
				ID:          matchUID(BracketLosers, losersRound, num),
				Round:       losersRound,
				MatchNumber: num,
				Bracket:     BracketLosers,
				LoserTo:     placeAt(PlacementEliminated),
			}
			wire(entrants[i], m.ID, 1)
			wire(entrants[i+1], m.ID, 2)
			losers = append(losers, m)
			byID[m.ID] = m
			next = append(next, entrant{matchID: m.ID})
		}
		if len(entrants)%2 == 1 {
			// The odd entrant carries forward unpaired into the next pool.
			next = append(next, entrants[len(entrants)-1])
		}
		return next
	}

	// Each winners round before the final contributes one wave of new
	// losers-bracket entrants. Round-1 byes have no loser and contribute
	// nothing.
	var survivors []entrant
	for r := 1; r < winnersRounds; r++ {
		var wave []entrant
		for _, m := range winnersByRound[r] {
			if r == 1 && (m.Registration1ID == nil || m.Registration2ID == nil) {
				continue
			}
			wave = append(wave, entrant{matchID: m.ID, asLoser: true})
		}
		entrants := reorderEntrants(survivors, wave)
		if len(entrants) < 2 {
			survivors = entrants
			continue
		}
		survivors = pairRound(entrants)
	}

	// No more incoming waves: keep pairing the remaining survivors until
	// exactly one is left.
	for len(survivors) >= 2 {
		survivors = pairRound(survivors)
	}

	// The lone survivor decides third place; when it is a losers-bracket
	// match winner, that match's loser takes fourth.
	if len(survivors) == 1 {
		e := survivors[0]
		src := byID[e.matchID]
		if e.asLoser {
			src.LoserTo = placeAt(PlacementThird)
		} else {
			src.WinnerTo = placeAt(PlacementThird)
			src.LoserTo = placeAt(PlacementFourth)
		}
	}

	matches := append(winners, losers...)
	assignPositions(matches)
	if err := PropagateByes(matches); err != nil {
		return nil, err
	}

	return &Bracket{
		Matches: matches,
		Totals:  Totals{WinnersRounds: winnersRounds, LosersRounds: losersRound, BracketSize: size},
	}, nil
}

// reorderEntrants interleaves losers-bracket survivors with the incoming wave
// of winners-bracket losers. The exact-2x2 case cross-pairs so a survivor
// does not meet the wave entrant that just eliminated the survivor's most
// recent opponent. This avoids immediate rematches in the common small
// brackets; it is a heuristic and not a formal guarantee for every size.
func reorderEntrants(survivors, wave []entrant) []entrant {
	if len(survivors) == 2 && len(wave) == 2 {
		return []entrant{survivors[0], wave[1], survivors[1], wave[0]}
	}
	out := make([]entrant, 0, len(survivors)+len(wave))
	for i := 0; i < len(survivors) || i < len(wave); i++ {
		if i < len(survivors) {
			out = append(out, survivors[i])
		}
		if i < len(wave) {
			out = append(out, wave[i])
		}
	}
	return out
}
