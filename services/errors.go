package services

import "errors"

// Shared errors mapped to HTTP statuses by the handler layer.
var (
	ErrNotFound      = errors.New("requested resource not found")
	ErrEventNotFound = errors.New("event not found")
	ErrMatchNotFound = errors.New("match not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrNotEnoughParticipants = errors.New("not enough participants (minimum 2 required)")
	ErrNoParticipants        = errors.New("at least one participant is required")
	ErrUnsupportedFormat     = errors.New("unsupported event format")
	ErrMatchNotReady         = errors.New("match does not have both participants yet")
	ErrMatchAlreadyCompleted = errors.New("match result has already been recorded")
	ErrInvalidSetScores      = errors.New("set scores do not produce a winner")
	ErrBracketAlreadyExists  = errors.New("bracket has already been generated for this event")

	// Concurrency
	ErrStandingsConflict = errors.New("standings update conflicted with a concurrent result; retry")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
)
