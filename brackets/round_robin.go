package brackets

// Pairing is one scheduled round-robin meeting. Home/away only matters for
// venue-style balancing; the engine alternates sides so no participant plays
// a long home or away streak.
type Pairing struct {
	HomeID int `json:"home_id"`
	AwayID int `json:"away_id"`
}

// RoundRobinRound is the ordered pairings of one schedule round.
type RoundRobinRound []Pairing

type RoundRobinScheduler struct{}

func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule produces a full round-robin schedule with the circle method. An
// odd participant count is padded with a sentinel; whoever is paired with the
// sentinel sits out that round. For N (padded) participants the schedule has
// N-1 rounds and every unordered pair appears exactly once. A lone
// participant has nobody to meet, so anything below two is rejected.
func (s *RoundRobinScheduler) Schedule(registrationIDs []int) ([]RoundRobinRound, error) {
	if len(registrationIDs) == 0 {
		return nil, ErrNoParticipants
	}
	if len(registrationIDs) == 1 {
		return nil, ErrNotEnoughParticipants
	}

	roster := make([]*int, 0, len(registrationIDs)+1)
	for i := range registrationIDs {
		roster = append(roster, &registrationIDs[i])
	}
	if len(roster)%2 == 1 {
		roster = append(roster, nil)
	}
	numPlayers := len(roster)

	rounds := make([]RoundRobinRound, 0, numPlayers-1)
	for j := 0; j < numPlayers-1; j++ {
		round := make(RoundRobinRound, 0, numPlayers/2)
		for i := 0; i < numPlayers/2; i++ {
			a, b := roster[i], roster[numPlayers-1-i]
			if a == nil || b == nil {
				continue
			}
			home, away := *a, *b
			// The anchor at index 0 would otherwise always play at home.
			if i == 0 && j%2 == 1 {
				home, away = away, home
			}
			round = append(round, Pairing{HomeID: home, AwayID: away})
		}
		rounds = append(rounds, round)

		// Rotate around the anchor: the last entry moves to index 1.
		last := roster[numPlayers-1]
		copy(roster[2:], roster[1:numPlayers-1])
		roster[1] = last
	}

	return rounds, nil
}
