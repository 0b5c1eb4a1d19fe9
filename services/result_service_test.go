package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubdesk/bracket-engine/models"
	"github.com/clubdesk/bracket-engine/repositories"
	"github.com/clubdesk/bracket-engine/scoring"
)

// fakeStandingRepo simulates concurrent writers by failing UpdateWithVersion
// a fixed number of times and bumping the stored row in between. It records
// the executor it was handed so callers can prove their transaction reached
// the repository.
type fakeStandingRepo struct {
	standing  models.RegistrationStanding
	conflicts int
	updates   int
	lastExec  repositories.SQLExecutor
}

func (f *fakeStandingRepo) Create(_ context.Context, _ repositories.SQLExecutor, standing *models.RegistrationStanding) error {
	standing.ID = 1
	standing.Version = 1
	f.standing = *standing
	return nil
}

func (f *fakeStandingRepo) GetByEventAndRegistration(_ context.Context, _ repositories.SQLExecutor, _, _ int) (*models.RegistrationStanding, error) {
	s := f.standing
	return &s, nil
}

func (f *fakeStandingRepo) GetOrCreate(ctx context.Context, exec repositories.SQLExecutor, eventID, registrationID int) (*models.RegistrationStanding, error) {
	if f.standing.ID == 0 {
		if err := f.Create(ctx, exec, &models.RegistrationStanding{EventID: eventID, RegistrationID: registrationID}); err != nil {
			return nil, err
		}
	}
	return f.GetByEventAndRegistration(ctx, exec, eventID, registrationID)
}

func (f *fakeStandingRepo) UpdateWithVersion(_ context.Context, exec repositories.SQLExecutor, standing *models.RegistrationStanding) error {
	f.lastExec = exec
	if f.conflicts > 0 {
		f.conflicts--
		// Another writer got in first: the stored row moved on.
		f.standing.Points++
		f.standing.MatchesWon++
		f.standing.Version++
		return repositories.ErrStandingVersionConflict
	}
	f.updates++
	standing.Version++
	f.standing = *standing
	return nil
}

func (f *fakeStandingRepo) ListByEvent(_ context.Context, _ repositories.SQLExecutor, _ int, _ bool) ([]*models.RegistrationStanding, error) {
	s := f.standing
	return []*models.RegistrationStanding{&s}, nil
}

func (f *fakeStandingRepo) DeleteByEvent(_ context.Context, _ repositories.SQLExecutor, _ int) error {
	f.standing = models.RegistrationStanding{}
	return nil
}

func TestApplyStandingDeltaRetriesOnVersionConflict(t *testing.T) {
	repo := &fakeStandingRepo{conflicts: 2}
	svc := &resultService{standingRepo: repo}

	delta := scoring.Delta{MatchesWon: 1, SetsWon: 3, SetsLost: 1, Points: 2}
	err := svc.applyStandingDelta(context.Background(), nil, 1, 42, delta)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.updates)
	// The concurrent increments survived and the delta landed exactly once.
	assert.Equal(t, 3, repo.standing.MatchesWon)
	assert.Equal(t, 4, repo.standing.Points)
	assert.Equal(t, 3, repo.standing.SetsWon)
}

func TestApplyStandingDeltaGivesUpAfterRetries(t *testing.T) {
	repo := &fakeStandingRepo{conflicts: standingUpdateRetries}
	svc := &resultService{standingRepo: repo}

	err := svc.applyStandingDelta(context.Background(), nil, 1, 42, scoring.Delta{Points: 2})
	assert.ErrorIs(t, err, ErrStandingsConflict)
	assert.Zero(t, repo.updates)
}

// fakeExecutor only needs an identity: applyStandingDelta must hand the
// caller's transaction through to every repository call so the standings
// write commits or rolls back together with the match update.
type fakeExecutor struct{ repositories.SQLExecutor }

func TestApplyStandingDeltaWritesThroughCallerExecutor(t *testing.T) {
	repo := &fakeStandingRepo{}
	svc := &resultService{standingRepo: repo}
	exec := &fakeExecutor{}

	err := svc.applyStandingDelta(context.Background(), exec, 1, 42, scoring.Delta{Points: 2})
	require.NoError(t, err)
	assert.Same(t, exec, repo.lastExec)
}

func TestValidateSetScores(t *testing.T) {
	event := &models.Event{BestOf: 5}

	assert.NoError(t, validateSetScores(event, 3, 1))
	assert.NoError(t, validateSetScores(event, 0, 3))

	assert.ErrorIs(t, validateSetScores(event, 0, 0), ErrInvalidSetScores)
	assert.ErrorIs(t, validateSetScores(event, 2, 2), ErrInvalidSetScores)
	// Short of the majority, or past it.
	assert.ErrorIs(t, validateSetScores(event, 2, 1), ErrInvalidSetScores)
	assert.ErrorIs(t, validateSetScores(event, 4, 1), ErrInvalidSetScores)

	// Without a configured best-of any decided lead is fine.
	free := &models.Event{}
	assert.NoError(t, validateSetScores(free, 2, 1))
	assert.ErrorIs(t, validateSetScores(free, 1, 1), ErrInvalidSetScores)
}

func TestFormatScore(t *testing.T) {
	score := formatScore([]scoring.SetResult{
		{Score1: 11, Score2: 7},
		{Score1: 9, Score2: 11},
		{Score1: 11, Score2: 5},
	})
	assert.Equal(t, "11-7,9-11,11-5", score)
}
