package scoring

import (
	"sort"

	"github.com/clubdesk/bracket-engine/models"
)

// Apply adds a delta to a standings row and returns the result. It is a pure
// reducer so the persistence layer can re-read and retry it under optimistic
// concurrency without double-counting.
func Apply(standing models.RegistrationStanding, delta Delta) models.RegistrationStanding {
	standing.MatchesWon += delta.MatchesWon
	standing.MatchesLost += delta.MatchesLost
	standing.SetsWon += delta.SetsWon
	standing.SetsLost += delta.SetsLost
	standing.Points += delta.Points
	return standing
}

// SortStandings orders rows for display: points descending, then set
// difference descending, then matches won descending. Remaining ties keep
// input order.
func SortStandings(standings []*models.RegistrationStanding) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		diffA, diffB := a.SetsWon-a.SetsLost, b.SetsWon-b.SetsLost
		if diffA != diffB {
			return diffA > diffB
		}
		return a.MatchesWon > b.MatchesWon
	})
}
