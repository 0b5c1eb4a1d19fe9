package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clubdesk/bracket-engine/models"
)

var (
	ErrStandingNotFound = errors.New("registration standing not found")

	// ErrStandingVersionConflict signals that another writer updated the row
	// between read and write. The caller re-reads, re-applies its delta and
	// retries.
	ErrStandingVersionConflict = errors.New("standing was modified concurrently")
)

type StandingRepository interface {
	Create(ctx context.Context, exec SQLExecutor, standing *models.RegistrationStanding) error
	GetByEventAndRegistration(ctx context.Context, exec SQLExecutor, eventID, registrationID int) (*models.RegistrationStanding, error)
	GetOrCreate(ctx context.Context, exec SQLExecutor, eventID, registrationID int) (*models.RegistrationStanding, error)
	UpdateWithVersion(ctx context.Context, exec SQLExecutor, standing *models.RegistrationStanding) error
	ListByEvent(ctx context.Context, exec SQLExecutor, eventID int, ranked bool) ([]*models.RegistrationStanding, error)
	DeleteByEvent(ctx context.Context, exec SQLExecutor, eventID int) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) executor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) Create(ctx context.Context, exec SQLExecutor, standing *models.RegistrationStanding) error {
	executor := r.executor(exec)
	query := `
		INSERT INTO registration_standings
			(event_id, registration_id, matches_won, matches_lost, sets_won, sets_lost, points, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if standing.UpdatedAt.IsZero() {
		standing.UpdatedAt = time.Now()
	}
	if standing.Version == 0 {
		standing.Version = 1
	}
	return executor.QueryRowContext(ctx, query,
		standing.EventID, standing.RegistrationID,
		standing.MatchesWon, standing.MatchesLost,
		standing.SetsWon, standing.SetsLost,
		standing.Points, standing.Version, standing.UpdatedAt,
	).Scan(&standing.ID)
}

func (r *postgresStandingRepository) scanStanding(row interface{ Scan(...interface{}) error }) (*models.RegistrationStanding, error) {
	var s models.RegistrationStanding
	err := row.Scan(
		&s.ID, &s.EventID, &s.RegistrationID,
		&s.MatchesWon, &s.MatchesLost, &s.SetsWon, &s.SetsLost,
		&s.Points, &s.Version, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresStandingRepository) GetByEventAndRegistration(ctx context.Context, exec SQLExecutor, eventID, registrationID int) (*models.RegistrationStanding, error) {
	executor := r.executor(exec)
	query := `
		SELECT id, event_id, registration_id, matches_won, matches_lost, sets_won, sets_lost, points, version, updated_at
		FROM registration_standings
		WHERE event_id = $1 AND registration_id = $2`
	return r.scanStanding(executor.QueryRowContext(ctx, query, eventID, registrationID))
}

func (r *postgresStandingRepository) GetOrCreate(ctx context.Context, exec SQLExecutor, eventID, registrationID int) (*models.RegistrationStanding, error) {
	standing, err := r.GetByEventAndRegistration(ctx, exec, eventID, registrationID)
	if err != nil {
		if errors.Is(err, ErrStandingNotFound) {
			standing = &models.RegistrationStanding{
				EventID:        eventID,
				RegistrationID: registrationID,
			}
			if createErr := r.Create(ctx, exec, standing); createErr != nil {
				return nil, fmt.Errorf("failed to create standing for event %d registration %d: %w", eventID, registrationID, createErr)
			}
			return standing, nil
		}
		return nil, fmt.Errorf("failed to get standing for event %d registration %d: %w", eventID, registrationID, err)
	}
	return standing, nil
}

// UpdateWithVersion writes the row only if nobody bumped its version since it
// was read. Zero affected rows on an existing id means a concurrent writer
// won; the caller retries the whole read-apply-write cycle.
func (r *postgresStandingRepository) UpdateWithVersion(ctx context.Context, exec SQLExecutor, standing *models.RegistrationStanding) error {
	executor := r.executor(exec)
	query := `
		UPDATE registration_standings
		SET matches_won = $1, matches_lost = $2, sets_won = $3, sets_lost = $4,
		    points = $5, version = version + 1, updated_at = NOW()
		WHERE id = $6 AND version = $7`

	result, err := executor.ExecContext(ctx, query,
		standing.MatchesWon, standing.MatchesLost,
		standing.SetsWon, standing.SetsLost,
		standing.Points, standing.ID, standing.Version,
	)
	if err != nil {
		return err
	}
	if err := checkAffectedRows(result, ErrStandingVersionConflict); err != nil {
		return err
	}
	standing.Version++
	return nil
}

func (r *postgresStandingRepository) ListByEvent(ctx context.Context, exec SQLExecutor, eventID int, ranked bool) ([]*models.RegistrationStanding, error) {
	executor := r.executor(exec)
	query := `
		SELECT id, event_id, registration_id, matches_won, matches_lost, sets_won, sets_lost, points, version, updated_at
		FROM registration_standings
		WHERE event_id = $1`
	if ranked {
		query += ` ORDER BY points DESC, (sets_won - sets_lost) DESC, matches_won DESC, registration_id ASC`
	} else {
		query += ` ORDER BY registration_id ASC`
	}

	rows, err := executor.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.RegistrationStanding, 0)
	for rows.Next() {
		s, scanErr := r.scanStanding(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}

func (r *postgresStandingRepository) DeleteByEvent(ctx context.Context, exec SQLExecutor, eventID int) error {
	executor := r.executor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM registration_standings WHERE event_id = $1`, eventID)
	return err
}
