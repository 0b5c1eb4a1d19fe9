package models

import "time"

// RegistrationStanding is the aggregate win/loss record of one registration
// across an event. Rows are created zeroed when the registration is made and
// incremented exactly once per completed match. Version backs the optimistic
// concurrency check on updates: two match completions touching the same
// registration must not lose a delta.
type RegistrationStanding struct {
	ID             int       `json:"id" db:"id"`
	EventID        int       `json:"event_id" db:"event_id"`
	RegistrationID int       `json:"registration_id" db:"registration_id"`
	MatchesWon     int       `json:"matches_won" db:"matches_won"`
	MatchesLost    int       `json:"matches_lost" db:"matches_lost"`
	SetsWon        int       `json:"sets_won" db:"sets_won"`
	SetsLost       int       `json:"sets_lost" db:"sets_lost"`
	Points         int       `json:"points" db:"points"`
	Version        int       `json:"-" db:"version"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
