package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubdesk/bracket-engine/models"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepository interface {
	GetByID(ctx context.Context, id int) (*models.Event, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.EventStatus) error
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `
		SELECT id, name, format, has_third_place_match, best_of,
		       points_per_win, points_per_loss, status, created_at
		FROM events
		WHERE id = $1`

	event := &models.Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.Format,
		&event.HasThirdPlaceMatch,
		&event.BestOf,
		&event.PointsPerWin,
		&event.PointsPerLoss,
		&event.Status,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan event %d: %w", id, err)
	}
	return event, nil
}

func (r *postgresEventRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.EventStatus) error {
	var executor SQLExecutor = r.db
	if exec != nil {
		executor = exec
	}
	result, err := executor.ExecContext(ctx, `UPDATE events SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status for event %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}
