package scoring

import "sort"

// HeatScore is one player's per-position scores in a heat-style test event
// (left, right, forehand, backhand). A nil position counts as zero.
type HeatScore struct {
	L *int `json:"l"`
	R *int `json:"r"`
	F *int `json:"f"`
	B *int `json:"b"`
}

func (h HeatScore) Total() int {
	total := 0
	for _, v := range []*int{h.L, h.R, h.F, h.B} {
		if v != nil {
			total += *v
		}
	}
	return total
}

// PlayerHeatResult groups one player's heat scores under the registration
// they compete for.
type PlayerHeatResult struct {
	RegistrationID int         `json:"registration_id"`
	Scores         []HeatScore `json:"scores"`
}

// PlayerTotal sums a player's position scores across all their heats.
func PlayerTotal(scores []HeatScore) int {
	total := 0
	for _, s := range scores {
		total += s.Total()
	}
	return total
}

type HeatLeaderboardEntry struct {
	RegistrationID int `json:"registration_id"`
	Total          int `json:"total"`
}

// HeatLeaderboard sums player totals per registration and returns them
// highest first. These totals rank mid-event leaderboards only; they are
// independent of the win/loss standings.
func HeatLeaderboard(results []PlayerHeatResult) []HeatLeaderboardEntry {
	totals := make(map[int]int)
	order := make([]int, 0, len(results))
	for _, r := range results {
		if _, seen := totals[r.RegistrationID]; !seen {
			order = append(order, r.RegistrationID)
		}
		totals[r.RegistrationID] += PlayerTotal(r.Scores)
	}

	entries := make([]HeatLeaderboardEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, HeatLeaderboardEntry{RegistrationID: id, Total: totals[id]})
	}
	// Stable so registrations tied on total keep first-seen order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
	return entries
}
