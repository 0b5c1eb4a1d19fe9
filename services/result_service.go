package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clubdesk/bracket-engine/brackets"
	"github.com/clubdesk/bracket-engine/models"
	"github.com/clubdesk/bracket-engine/repositories"
	"github.com/clubdesk/bracket-engine/scoring"
)

// standingUpdateRetries bounds the optimistic-concurrency retry loop when two
// results for the same registration land at once.
const standingUpdateRetries = 3

type ResultService interface {
	RecordResult(ctx context.Context, eventID int, bracketUID string, sets []scoring.SetResult) (*models.Match, error)
}

type resultService struct {
	db           *sql.DB
	eventRepo    repositories.EventRepository
	matchRepo    repositories.MatchRepository
	standingRepo repositories.StandingRepository
	hub          *brackets.Hub
	logger       *slog.Logger
}

func NewResultService(
	db *sql.DB,
	eventRepo repositories.EventRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) ResultService {
	if logger == nil {
		logger = slog.Default()
	}
	return &resultService{
		db:           db,
		eventRepo:    eventRepo,
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		hub:          hub,
		logger:       logger,
	}
}

// RecordResult stores one completed match, routes the winner and loser along
// the bracket's advancement edges, resolves any walkovers that cascade from
// that, and applies the standings deltas for both sides. Standings updates
// use optimistic concurrency and retry on version conflicts.
func (s *resultService) RecordResult(ctx context.Context, eventID int, bracketUID string, sets []scoring.SetResult) (*models.Match, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event %d: %w", eventID, err)
	}

	rows, err := s.matchRepo.ListByEvent(ctx, nil, eventID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for event %d: %w", eventID, err)
	}

	rowsByUID := make(map[string]*models.Match, len(rows))
	for _, row := range rows {
		rowsByUID[row.BracketUID] = row
	}
	row, ok := rowsByUID[bracketUID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	if row.Played {
		return nil, ErrMatchAlreadyCompleted
	}
	if row.Registration1ID == nil || row.Registration2ID == nil {
		return nil, ErrMatchNotReady
	}

	won1, won2 := scoring.SetPoints(sets)
	if err := validateSetScores(event, won1, won2); err != nil {
		return nil, err
	}

	reg1, reg2 := *row.Registration1ID, *row.Registration2ID
	winnerID, loserID := reg1, reg2
	if won2 > won1 {
		winnerID, loserID = reg2, reg1
	}

	// Replay the result against the in-memory graph so advancement and
	// walkover cascades are computed exactly like at generation time.
	graph := make([]*brackets.Match, 0, len(rows))
	graphByUID := make(map[string]*brackets.Match, len(rows))
	prev := make(map[string]models.Match, len(rows))
	for _, r := range rows {
		prev[r.BracketUID] = *r
		gm := generatedFromRow(r)
		graph = append(graph, gm)
		graphByUID[gm.ID] = gm
	}

	played := graphByUID[bracketUID]
	played.Played = true
	played.WinnerID = &winnerID
	if err := deliverAdvancement(graphByUID, played.WinnerTo, winnerID); err != nil {
		return nil, err
	}
	if err := deliverAdvancement(graphByUID, played.LoserTo, loserID); err != nil {
		return nil, err
	}
	if err := brackets.PropagateByes(graph); err != nil {
		return nil, fmt.Errorf("walkover propagation failed for event %d: %w", eventID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	score := formatScore(sets)
	if err := s.matchRepo.UpdateResult(ctx, tx, row.ID, &score, models.MatchStatusCompleted, &winnerID, true); err != nil {
		return nil, fmt.Errorf("failed to store result for match %s: %w", bracketUID, err)
	}
	if err := s.persistCascade(ctx, tx, graph, prev, rowsByUID, bracketUID); err != nil {
		return nil, err
	}

	// Byes and walkovers never reach this path, so every recorded result
	// counts for both sides. Standings land in the same transaction as the
	// match row: if either side's delta cannot be written, everything rolls
	// back and the caller can retry the whole result.
	delta1, delta2 := scoring.MatchDeltas(winnerID, reg1, reg2, sets, event.PointsPerWin, event.PointsPerLoss)
	if err := s.applyStandingDelta(ctx, tx, eventID, reg1, delta1); err != nil {
		return nil, err
	}
	if err := s.applyStandingDelta(ctx, tx, eventID, reg2, delta2); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit result for match %s: %w", bracketUID, err)
	}
	committed = true

	row.Score = &score
	row.WinnerID = &winnerID
	row.Played = true
	row.Status = models.MatchStatusCompleted

	s.logger.Info("match result recorded",
		"event_id", eventID,
		"bracket_uid", bracketUID,
		"winner_id", winnerID,
		"loser_id", loserID,
		"score", score,
	)

	if s.hub != nil {
		room := brackets.EventRoom(eventID)
		s.hub.BroadcastToRoom(room, brackets.HubMessage{
			Type:   brackets.MessageMatchUpdated,
			RoomID: room,
			Payload: map[string]interface{}{
				"event_id":    eventID,
				"bracket_uid": bracketUID,
				"winner_id":   winnerID,
				"score":       score,
			},
		})
		s.hub.BroadcastToRoom(room, brackets.HubMessage{
			Type:    brackets.MessageStandingsUpdated,
			RoomID:  room,
			Payload: map[string]interface{}{"event_id": eventID},
		})
	}

	return row, nil
}

// validateSetScores rejects drawn results outright, and with a configured
// best-of it requires exactly the winning majority, no more and no fewer.
func validateSetScores(event *models.Event, won1, won2 int) error {
	if won1+won2 == 0 {
		return fmt.Errorf("%w: no decided sets", ErrInvalidSetScores)
	}
	if won1 == won2 {
		return fmt.Errorf("%w: sets are drawn %d-%d", ErrInvalidSetScores, won1, won2)
	}
	if event.BestOf > 0 {
		needed := event.BestOf/2 + 1
		high := won1
		if won2 > high {
			high = won2
		}
		if high != needed {
			return fmt.Errorf("%w: best of %d requires exactly %d won sets, got %d", ErrInvalidSetScores, event.BestOf, needed, high)
		}
	}
	return nil
}

func deliverAdvancement(byUID map[string]*brackets.Match, adv *brackets.Advancement, registrationID int) error {
	if adv == nil || adv.IsPlacement() {
		return nil
	}
	target, ok := byUID[adv.MatchID]
	if !ok {
		return fmt.Errorf("%w (target %s)", brackets.ErrInconsistentBracket, adv.MatchID)
	}
	id := registrationID
	if adv.Slot == 1 {
		target.Registration1ID = &id
	} else {
		target.Registration2ID = &id
	}
	return nil
}

// persistCascade diffs the replayed graph against the rows as they were
// loaded and writes back every downstream change: newly filled slots and
// walkover matches auto-completed by propagation. The triggering match is
// already updated separately.
func (s *resultService) persistCascade(
	ctx context.Context,
	tx repositories.SQLExecutor,
	graph []*brackets.Match,
	prev map[string]models.Match,
	rowsByUID map[string]*models.Match,
	triggerUID string,
) error {
	for _, gm := range graph {
		before := prev[gm.ID]
		row := rowsByUID[gm.ID]

		if !slotEqual(before.Registration1ID, gm.Registration1ID) || !slotEqual(before.Registration2ID, gm.Registration2ID) {
			if err := s.matchRepo.UpdateSlots(ctx, tx, row.ID, gm.Registration1ID, gm.Registration2ID); err != nil {
				return fmt.Errorf("failed to update slots for match %s: %w", gm.ID, err)
			}
			row.Registration1ID = gm.Registration1ID
			row.Registration2ID = gm.Registration2ID
		}

		if gm.Played && !before.Played && gm.ID != triggerUID {
			if err := s.matchRepo.UpdateResult(ctx, tx, row.ID, nil, models.MatchStatusCompleted, gm.WinnerID, true); err != nil {
				return fmt.Errorf("failed to record walkover for match %s: %w", gm.ID, err)
			}
			row.WinnerID = gm.WinnerID
			row.Played = true
			row.Status = models.MatchStatusCompleted
		}
	}
	return nil
}

func slotEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// applyStandingDelta runs the read-apply-write cycle under optimistic
// concurrency: on a version conflict it re-reads the row and re-applies the
// same delta, since scoring.Apply is a pure reducer. A zero-row update does
// not poison the surrounding transaction, so retrying inside it is safe.
func (s *resultService) applyStandingDelta(ctx context.Context, exec repositories.SQLExecutor, eventID, registrationID int, delta scoring.Delta) error {
	for attempt := 0; attempt < standingUpdateRetries; attempt++ {
		standing, err := s.standingRepo.GetOrCreate(ctx, exec, eventID, registrationID)
		if err != nil {
			return err
		}
		updated := scoring.Apply(*standing, delta)
		if err := s.standingRepo.UpdateWithVersion(ctx, exec, &updated); err != nil {
			if errors.Is(err, repositories.ErrStandingVersionConflict) {
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("%w: event %d registration %d", ErrStandingsConflict, eventID, registrationID)
}
