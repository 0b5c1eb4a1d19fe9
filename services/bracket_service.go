package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/clubdesk/bracket-engine/brackets"
	"github.com/clubdesk/bracket-engine/models"
	"github.com/clubdesk/bracket-engine/repositories"
	"github.com/clubdesk/bracket-engine/storage"
)

// EventBracket is the full read model for one event: configuration, every
// persisted match and the current standings.
type EventBracket struct {
	Event     *models.Event                  `json:"event"`
	Matches   []*models.Match                `json:"matches"`
	Standings []*models.RegistrationStanding `json:"standings"`
}

// GenerationResult reports what a generation run produced. Bracket is set for
// elimination formats, Rounds for round robin; Matches always holds the
// persisted rows.
type GenerationResult struct {
	Format   models.EventFormat         `json:"format"`
	Bracket  *brackets.Bracket          `json:"bracket,omitempty"`
	Rounds   []brackets.RoundRobinRound `json:"rounds,omitempty"`
	Matches  []*models.Match            `json:"matches"`
	Snapshot *storage.SnapshotResult    `json:"-"`
}

type BracketService interface {
	GenerateAndSaveBracket(ctx context.Context, eventID int, seeds []brackets.ParticipantSeed) (*GenerationResult, error)
	GetEventBracket(ctx context.Context, eventID int) (*EventBracket, error)
}

type bracketService struct {
	db           *sql.DB
	eventRepo    repositories.EventRepository
	matchRepo    repositories.MatchRepository
	standingRepo repositories.StandingRepository
	hub          *brackets.Hub
	snapshots    storage.SnapshotStore
	logger       *slog.Logger
}

// NewBracketService wires the generation workflow. hub and snapshots are
// optional; pass nil to disable live broadcasts or snapshot archiving.
func NewBracketService(
	db *sql.DB,
	eventRepo repositories.EventRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
	hub *brackets.Hub,
	snapshots storage.SnapshotStore,
	logger *slog.Logger,
) BracketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bracketService{
		db:           db,
		eventRepo:    eventRepo,
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		hub:          hub,
		snapshots:    snapshots,
		logger:       logger,
	}
}

func generatorForFormat(format models.EventFormat) (brackets.Generator, error) {
	switch format {
	case models.FormatSingleElimination:
		return brackets.NewSingleEliminationGenerator(), nil
	case models.FormatDoubleElimination:
		return brackets.NewDoubleEliminationGenerator(), nil
	case models.FormatModifiedDoubleElimination:
		return brackets.NewModifiedDoubleEliminationGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// GenerateAndSaveBracket runs the event's configured generator, persists the
// resulting matches in one transaction, flips the event to active, and then
// notifies websocket subscribers and (best effort) archives a JSON snapshot.
func (s *bracketService) GenerateAndSaveBracket(ctx context.Context, eventID int, seeds []brackets.ParticipantSeed) (*GenerationResult, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: participant list is empty", ErrValidationFailed)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event %d: %w", eventID, err)
	}

	existing, err := s.matchRepo.ListByEvent(ctx, nil, eventID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing matches for event %d: %w", eventID, err)
	}
	if len(existing) > 0 {
		return nil, ErrBracketAlreadyExists
	}

	result := &GenerationResult{Format: event.Format}
	if event.Format == models.FormatRoundRobin {
		if err := s.generateRoundRobin(eventID, seeds, result); err != nil {
			return nil, err
		}
	} else {
		if err := s.generateElimination(ctx, event, seeds, result); err != nil {
			return nil, err
		}
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

	if err := s.matchRepo.BatchCreate(ctx, tx, result.Matches); err != nil {
		return nil, fmt.Errorf("failed to persist generated matches: %w", err)
	}
	if err := s.eventRepo.UpdateStatus(ctx, tx, eventID, models.EventStatusActive); err != nil {
		return nil, fmt.Errorf("failed to activate event %d: %w", eventID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bracket for event %d: %w", eventID, err)
	}
	committed = true

	s.logger.Info("bracket generated",
		"event_id", eventID,
		"format", event.Format,
		"participants", len(seeds),
		"matches", len(result.Matches),
	)

	if s.hub != nil {
		s.hub.BroadcastToRoom(brackets.EventRoom(eventID), brackets.HubMessage{
			Type:   brackets.MessageBracketGenerated,
			RoomID: brackets.EventRoom(eventID),
			Payload: map[string]interface{}{
				"event_id":    eventID,
				"format":      event.Format,
				"match_count": len(result.Matches),
			},
		})
	}

	result.Snapshot = s.archiveSnapshot(ctx, eventID, result)
	return result, nil
}

func (s *bracketService) generateElimination(ctx context.Context, event *models.Event, seeds []brackets.ParticipantSeed, result *GenerationResult) error {
	generator, err := generatorForFormat(event.Format)
	if err != nil {
		return err
	}

	bracket, err := generator.Generate(ctx, brackets.GenerateParams{
		Participants:       seeds,
		HasThirdPlaceMatch: event.HasThirdPlaceMatch,
	})
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughParticipants) {
			return ErrNotEnoughParticipants
		}
		return fmt.Errorf("%s generation failed for event %d: %w", generator.Name(), event.ID, err)
	}

	rows := make([]*models.Match, 0, len(bracket.Matches))
	for _, m := range bracket.Matches {
		rows = append(rows, matchRowFromGenerated(event.ID, m))
	}

	result.Bracket = bracket
	result.Matches = rows
	return nil
}

func (s *bracketService) generateRoundRobin(eventID int, seeds []brackets.ParticipantSeed, result *GenerationResult) error {
	ids := make([]int, len(seeds))
	for i, seed := range seeds {
		ids[i] = seed.RegistrationID
	}

	rounds, err := brackets.NewRoundRobinScheduler().Schedule(ids)
	if err != nil {
		switch {
		case errors.Is(err, brackets.ErrNoParticipants):
			return ErrNoParticipants
		case errors.Is(err, brackets.ErrNotEnoughParticipants):
			return ErrNotEnoughParticipants
		}
		return err
	}

	var rows []*models.Match
	position := 0
	for r, round := range rounds {
		for i, pairing := range round {
			position++
			home, away := pairing.HomeID, pairing.AwayID
			rows = append(rows, &models.Match{
				EventID:         eventID,
				BracketUID:      fmt.Sprintf("RR-%d-%d", r+1, i+1),
				Round:           r + 1,
				MatchNumber:     i + 1,
				BracketPosition: position,
				Registration1ID: &home,
				Registration2ID: &away,
				Status:          models.MatchStatusScheduled,
			})
		}
	}
	result.Rounds = rounds
	result.Matches = rows
	return nil
}

func (s *bracketService) archiveSnapshot(ctx context.Context, eventID int, result *GenerationResult) *storage.SnapshotResult {
	if s.snapshots == nil {
		return nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to marshal bracket snapshot", "event_id", eventID, "error", err)
		return nil
	}
	snapshot, err := s.snapshots.SaveBracketSnapshot(ctx, eventID, payload)
	if err != nil {
		// Snapshot archival never fails the generation itself.
		s.logger.Warn("failed to archive bracket snapshot", "event_id", eventID, "error", err)
		return nil
	}
	s.logger.Info("bracket snapshot archived", "event_id", eventID, "key", snapshot.Key)
	return snapshot
}

// GetEventBracket loads the event, its matches and its ranked standings
// concurrently.
func (s *bracketService) GetEventBracket(ctx context.Context, eventID int) (*EventBracket, error) {
	var (
		event     *models.Event
		matches   []*models.Match
		standings []*models.RegistrationStanding
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := s.eventRepo.GetByID(gctx, eventID)
		if err != nil {
			if errors.Is(err, repositories.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		event = e
		return nil
	})
	g.Go(func() error {
		m, err := s.matchRepo.ListByEvent(gctx, nil, eventID, nil, nil)
		if err != nil {
			return err
		}
		matches = m
		return nil
	})
	g.Go(func() error {
		st, err := s.standingRepo.ListByEvent(gctx, nil, eventID, true)
		if err != nil {
			return err
		}
		standings = st
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &EventBracket{Event: event, Matches: matches, Standings: standings}, nil
}
