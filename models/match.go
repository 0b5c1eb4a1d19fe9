package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusCanceled   MatchStatus = "canceled"
)

// Match is the persisted form of one generated bracket match. The routing
// columns mirror the generator's advancement edges: either a target bracket
// uid + slot, or a terminal placement tag.
type Match struct {
	ID              int     `json:"id"`
	EventID         int     `json:"event_id"`
	BracketUID      string  `json:"bracket_uid"`
	Round           int     `json:"round"`
	MatchNumber     int     `json:"match_number"`
	BracketType     *string `json:"bracket_type,omitempty"`
	BracketPosition int     `json:"bracket_position"`

	Registration1ID *int `json:"registration1_id,omitempty"`
	Registration2ID *int `json:"registration2_id,omitempty"`

	WinnerToUID     *string `json:"winner_to_uid,omitempty"`
	WinnerToSlot    *int    `json:"winner_to_slot,omitempty"`
	WinnerPlacement *string `json:"winner_placement,omitempty"`
	LoserToUID      *string `json:"loser_to_uid,omitempty"`
	LoserToSlot     *int    `json:"loser_to_slot,omitempty"`
	LoserPlacement  *string `json:"loser_placement,omitempty"`

	WinnerID *int    `json:"winner_id,omitempty"`
	Score    *string `json:"score,omitempty"`
	Played   bool    `json:"played"`

	IsBye        bool        `json:"is_bye,omitempty"`
	IsThirdPlace bool        `json:"is_third_place,omitempty"`
	Status       MatchStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}
