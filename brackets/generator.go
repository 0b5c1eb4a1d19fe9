package brackets

import (
	"context"
	"errors"
)

var (
	// ErrNotEnoughParticipants is returned when fewer than two participants
	// are passed to a generator or scheduler.
	ErrNotEnoughParticipants = errors.New("not enough participants to generate a bracket (minimum 2)")

	// ErrNoParticipants is returned by the round-robin scheduler for an
	// empty participant list.
	ErrNoParticipants = errors.New("cannot schedule rounds with zero participants")

	// ErrInconsistentBracket means a routing edge points at a match id that
	// does not exist in the generated match map. It indicates a generator
	// bug, not a recoverable runtime condition.
	ErrInconsistentBracket = errors.New("bracket routing references an unknown match")
)

type GenerateParams struct {
	Participants       []ParticipantSeed
	HasThirdPlaceMatch bool
}

type Generator interface {
	Generate(ctx context.Context, params GenerateParams) (*Bracket, error)

	Name() string
}
