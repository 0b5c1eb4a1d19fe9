// Package scoring holds the pure match-result aggregation functions: point
// and set tallies per side, the standings delta reducer, and heat-total
// computation. Nothing here performs I/O; persistence and retry concerns
// live with the callers.
package scoring

// SetResult is one set's score pair, side 1 first.
type SetResult struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

// MatchPoints returns the points awarded to each side based solely on which
// registration id equals winnerID. There are no draws.
func MatchPoints(winnerID, reg1ID, reg2ID, pointsPerWin, pointsPerLoss int) (int, int) {
	if winnerID == reg1ID {
		return pointsPerWin, pointsPerLoss
	}
	if winnerID == reg2ID {
		return pointsPerLoss, pointsPerWin
	}
	return 0, 0
}

// SetPoints tallies sets won per side. A drawn set counts for neither side;
// rejecting drawn sets where the sport forbids them is the caller's job.
func SetPoints(sets []SetResult) (int, int) {
	won1, won2 := 0, 0
	for _, set := range sets {
		switch {
		case set.Score1 > set.Score2:
			won1++
		case set.Score2 > set.Score1:
			won2++
		}
	}
	return won1, won2
}

// Delta is the standings increment one completed match produces for one side.
type Delta struct {
	MatchesWon  int `json:"matches_won"`
	MatchesLost int `json:"matches_lost"`
	SetsWon     int `json:"sets_won"`
	SetsLost    int `json:"sets_lost"`
	Points      int `json:"points"`
}

// MatchDeltas combines MatchPoints and SetPoints into the two per-side
// standings deltas for a completed match.
func MatchDeltas(winnerID, reg1ID, reg2ID int, sets []SetResult, pointsPerWin, pointsPerLoss int) (Delta, Delta) {
	points1, points2 := MatchPoints(winnerID, reg1ID, reg2ID, pointsPerWin, pointsPerLoss)
	sets1, sets2 := SetPoints(sets)

	d1 := Delta{SetsWon: sets1, SetsLost: sets2, Points: points1}
	d2 := Delta{SetsWon: sets2, SetsLost: sets1, Points: points2}
	if winnerID == reg1ID {
		d1.MatchesWon = 1
		d2.MatchesLost = 1
	} else if winnerID == reg2ID {
		d2.MatchesWon = 1
		d1.MatchesLost = 1
	}
	return d1, d2
}
