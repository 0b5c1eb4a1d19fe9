package models

import "time"

type EventFormat string

const (
	FormatSingleElimination         EventFormat = "single_elimination"
	FormatDoubleElimination         EventFormat = "double_elimination"
	FormatModifiedDoubleElimination EventFormat = "modified_double_elimination"
	FormatRoundRobin                EventFormat = "round_robin"
)

type EventStatus string

const (
	EventStatusRegistration EventStatus = "registration"
	EventStatusActive       EventStatus = "active"
	EventStatusCompleted    EventStatus = "completed"
)

// Event carries the per-event scoring and format configuration the engine
// needs. Registration management around it is handled elsewhere.
type Event struct {
	ID                 int         `json:"id" db:"id"`
	Name               string      `json:"name" db:"name"`
	Format             EventFormat `json:"format" db:"format"`
	HasThirdPlaceMatch bool        `json:"has_third_place_match" db:"has_third_place_match"`
	BestOf             int         `json:"best_of" db:"best_of"`
	PointsPerWin       int         `json:"points_per_win" db:"points_per_win"`
	PointsPerLoss      int         `json:"points_per_loss" db:"points_per_loss"`
	Status             EventStatus `json:"status" db:"status"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
}
