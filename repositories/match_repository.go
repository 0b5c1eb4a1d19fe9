package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/clubdesk/bracket-engine/models"
)

var (
	ErrMatchNotFound            = errors.New("match not found")
	ErrMatchEventInvalid        = errors.New("match event conflict or invalid")
	ErrMatchRegistrationInvalid = errors.New("match registration conflict or invalid")
	ErrMatchBracketUIDConflict  = errors.New("bracket uid already exists for this event")
)

type MatchRepository interface {
	BatchCreate(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByBracketUID(ctx context.Context, exec SQLExecutor, eventID int, bracketUID string) (*models.Match, error)
	ListByEvent(ctx context.Context, exec SQLExecutor, eventID int, round *int, status *models.MatchStatus) ([]*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, score *string, status models.MatchStatus, winnerID *int, played bool) error
	UpdateSlots(ctx context.Context, exec SQLExecutor, id int, registration1ID, registration2ID *int) error
	DeleteByEvent(ctx context.Context, exec SQLExecutor, eventID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) executor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	id, event_id, bracket_uid, round, match_number, bracket_type, bracket_position,
	registration1_id, registration2_id,
	winner_to_uid, winner_to_slot, winner_placement,
	loser_to_uid, loser_to_slot, loser_placement,
	winner_id, score, played, is_bye, is_third_place, status, created_at
	`

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.EventID, &m.BracketUID, &m.Round, &m.MatchNumber, &m.BracketType, &m.BracketPosition,
		&m.Registration1ID, &m.Registration2ID,
		&m.WinnerToUID, &m.WinnerToSlot, &m.WinnerPlacement,
		&m.LoserToUID, &m.LoserToSlot, &m.LoserPlacement,
		&m.WinnerID, &m.Score, &m.Played, &m.IsBye, &m.IsThirdPlace, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) BatchCreate(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	executor := r.executor(exec)
	query := `
		INSERT INTO matches
			(event_id, bracket_uid, round, match_number, bracket_type, bracket_position,
			 registration1_id, registration2_id,
			 winner_to_uid, winner_to_slot, winner_placement,
			 loser_to_uid, loser_to_slot, loser_placement,
			 winner_id, score, played, is_bye, is_third_place, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at`

	for _, m := range matches {
		err := executor.QueryRowContext(ctx, query,
			m.EventID, m.BracketUID, m.Round, m.MatchNumber, m.BracketType, m.BracketPosition,
			m.Registration1ID, m.Registration2ID,
			m.WinnerToUID, m.WinnerToSlot, m.WinnerPlacement,
			m.LoserToUID, m.LoserToSlot, m.LoserPlacement,
			m.WinnerID, m.Score, m.Played, m.IsBye, m.IsThirdPlace, m.Status,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return r.handleMatchError(fmt.Errorf("failed to insert match %s: %w", m.BracketUID, err))
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByBracketUID(ctx context.Context, exec SQLExecutor, eventID int, bracketUID string) (*models.Match, error) {
	executor := r.executor(exec)
	query := `SELECT` + matchColumns + `FROM matches WHERE event_id = $1 AND bracket_uid = $2`
	return r.scanMatch(executor.QueryRowContext(ctx, query, eventID, bracketUID))
}

func (r *postgresMatchRepository) ListByEvent(ctx context.Context, exec SQLExecutor, eventID int, roundFilter *int, statusFilter *models.MatchStatus) ([]*models.Match, error) {
	executor := r.executor(exec)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT` + matchColumns + `FROM matches WHERE event_id = $1`)

	args := []interface{}{eventID}
	placeholder := 2
	if roundFilter != nil {
		queryBuilder.WriteString(" AND round = $" + strconv.Itoa(placeholder))
		args = append(args, *roundFilter)
		placeholder++
	}
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(placeholder))
		args = append(args, *statusFilter)
	}
	queryBuilder.WriteString(" ORDER BY bracket_position ASC, id ASC")

	rows, err := executor.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for event %d: %w", eventID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, score *string, status models.MatchStatus, winnerID *int, played bool) error {
	executor := r.executor(exec)
	query := `
		UPDATE matches
		SET score = $1, status = $2, winner_id = $3, played = $4
		WHERE id = $5`

	result, err := executor.ExecContext(ctx, query, score, status, winnerID, played, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateSlots(ctx context.Context, exec SQLExecutor, id int, registration1ID, registration2ID *int) error {
	executor := r.executor(exec)
	query := `UPDATE matches SET registration1_id = $1, registration2_id = $2 WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, registration1ID, registration2ID, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByEvent(ctx context.Context, exec SQLExecutor, eventID int) error {
	executor := r.executor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE event_id = $1`, eventID)
	return err
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "matches_event_id_fkey":
			return ErrMatchEventInvalid
		case "matches_registration1_id_fkey", "matches_registration2_id_fkey", "matches_winner_id_fkey":
			return ErrMatchRegistrationInvalid
		case "matches_event_id_bracket_uid_key":
			return ErrMatchBracketUIDConflict
		}
	}
	return err
}
