// Package brackets generates tournament brackets as flat, fully linked match
// graphs: single elimination, double elimination (plain and rematch-avoiding),
// and round-robin schedules. Generated matches are pure data keyed by string
// uids; persistence and transport live elsewhere.
package brackets

import "fmt"

type BracketType string

const (
	BracketWinners BracketType = "winners"
	BracketLosers  BracketType = "losers"
)

// Placement is a terminal outcome for a participant leaving the bracket.
type Placement string

const (
	PlacementFirst      Placement = "first-place"
	PlacementSecond     Placement = "second-place"
	PlacementThird      Placement = "third-place"
	PlacementFourth     Placement = "fourth-place"
	PlacementEliminated Placement = "eliminated"
)

// Advancement is one outgoing routing edge of a match: either "the winner
// (or loser) proceeds to slot N of match M", or a terminal placement. Exactly
// one of the two forms is populated.
type Advancement struct {
	MatchID   string    `json:"match_id,omitempty"`
	Slot      int       `json:"slot,omitempty"`
	Placement Placement `json:"placement,omitempty"`
}

func (a *Advancement) IsPlacement() bool {
	return a.Placement != ""
}

func advanceTo(matchID string, slot int) *Advancement {
	return &Advancement{MatchID: matchID, Slot: slot}
}

func placeAt(p Placement) *Advancement {
	return &Advancement{Placement: p}
}

// Match is one node of the generated bracket graph. Slots hold registration
// ids; nil means the slot is still waiting on an upstream result (or, after
// bye propagation, that it can never be filled).
type Match struct {
	ID              string      `json:"id"`
	Round           int         `json:"round"`
	MatchNumber     int         `json:"match_number"`
	Bracket         BracketType `json:"bracket,omitempty"`
	BracketPosition int         `json:"bracket_position"`

	Registration1ID *int `json:"registration1_id,omitempty"`
	Registration2ID *int `json:"registration2_id,omitempty"`

	WinnerTo *Advancement `json:"winner_to,omitempty"`
	LoserTo  *Advancement `json:"loser_to,omitempty"`

	WinnerID *int `json:"winner_id,omitempty"`
	Played   bool `json:"played"`

	IsBye        bool `json:"is_bye,omitempty"`
	IsThirdPlace bool `json:"is_third_place,omitempty"`
}

func (m *Match) setSlot(n int, registrationID *int) {
	if n == 1 {
		m.Registration1ID = registrationID
	} else {
		m.Registration2ID = registrationID
	}
}

// Totals summarizes the shape of a generated bracket.
type Totals struct {
	WinnersRounds int `json:"winners_rounds"`
	LosersRounds  int `json:"losers_rounds,omitempty"`
	BracketSize   int `json:"bracket_size"`
}

type Bracket struct {
	Matches []*Match `json:"matches"`
	Totals  Totals   `json:"totals"`
}

// ByID indexes the bracket's matches by uid.
func (b *Bracket) ByID() map[string]*Match {
	byID := make(map[string]*Match, len(b.Matches))
	for _, m := range b.Matches {
		byID[m.ID] = m
	}
	return byID
}

// matchUID builds the stable uid for a match: "WB-<round>-<number>" and
// "LB-<round>-<number>" for the two double-elimination brackets, "M-..." for
// a bracket with a single progression.
func matchUID(bracket BracketType, round, number int) string {
	prefix := "M"
	switch bracket {
	case BracketWinners:
		prefix = "WB"
	case BracketLosers:
		prefix = "LB"
	}
	return fmt.Sprintf("%s-%d-%d", prefix, round, number)
}

// assignPositions numbers the matches in their generated order, giving
// consumers a stable display ordering independent of uid parsing.
func assignPositions(matches []*Match) {
	for i, m := range matches {
		m.BracketPosition = i + 1
	}
}
