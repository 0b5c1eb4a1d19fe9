package services

import (
	"fmt"
	"strings"

	"github.com/clubdesk/bracket-engine/brackets"
	"github.com/clubdesk/bracket-engine/models"
	"github.com/clubdesk/bracket-engine/scoring"
)

// matchRowFromGenerated flattens a generated match into its persisted form.
func matchRowFromGenerated(eventID int, m *brackets.Match) *models.Match {
	row := &models.Match{
		EventID:         eventID,
		BracketUID:      m.ID,
		Round:           m.Round,
		MatchNumber:     m.MatchNumber,
		BracketPosition: m.BracketPosition,
		Registration1ID: m.Registration1ID,
		Registration2ID: m.Registration2ID,
		WinnerID:        m.WinnerID,
		Played:          m.Played,
		IsBye:           m.IsBye,
		IsThirdPlace:    m.IsThirdPlace,
		Status:          models.MatchStatusScheduled,
	}
	if m.Bracket != "" {
		bracketType := string(m.Bracket)
		row.BracketType = &bracketType
	}
	if m.Played {
		row.Status = models.MatchStatusCompleted
	}
	row.WinnerToUID, row.WinnerToSlot, row.WinnerPlacement = advancementColumns(m.WinnerTo)
	row.LoserToUID, row.LoserToSlot, row.LoserPlacement = advancementColumns(m.LoserTo)
	return row
}

func advancementColumns(adv *brackets.Advancement) (*string, *int, *string) {
	if adv == nil {
		return nil, nil, nil
	}
	if adv.IsPlacement() {
		placement := string(adv.Placement)
		return nil, nil, &placement
	}
	uid := adv.MatchID
	slot := adv.Slot
	return &uid, &slot, nil
}

func advancementFromColumns(uid *string, slot *int, placement *string) *brackets.Advancement {
	switch {
	case placement != nil:
		return &brackets.Advancement{Placement: brackets.Placement(*placement)}
	case uid != nil && slot != nil:
		return &brackets.Advancement{MatchID: *uid, Slot: *slot}
	default:
		return nil
	}
}

// generatedFromRow rebuilds the in-memory match graph node from a persisted
// row so bye/walkover propagation can run against current state.
func generatedFromRow(row *models.Match) *brackets.Match {
	m := &brackets.Match{
		ID:              row.BracketUID,
		Round:           row.Round,
		MatchNumber:     row.MatchNumber,
		BracketPosition: row.BracketPosition,
		Registration1ID: row.Registration1ID,
		Registration2ID: row.Registration2ID,
		WinnerID:        row.WinnerID,
		Played:          row.Played,
		IsBye:           row.IsBye,
		IsThirdPlace:    row.IsThirdPlace,
	}
	if row.BracketType != nil {
		m.Bracket = brackets.BracketType(*row.BracketType)
	}
	m.WinnerTo = advancementFromColumns(row.WinnerToUID, row.WinnerToSlot, row.WinnerPlacement)
	m.LoserTo = advancementFromColumns(row.LoserToUID, row.LoserToSlot, row.LoserPlacement)
	return m
}

// formatScore renders set results the way they are stored on the match row,
// e.g. "11-7,9-11,11-5".
func formatScore(sets []scoring.SetResult) string {
	parts := make([]string, len(sets))
	for i, s := range sets {
		parts[i] = fmt.Sprintf("%d-%d", s.Score1, s.Score2)
	}
	return strings.Join(parts, ",")
}
