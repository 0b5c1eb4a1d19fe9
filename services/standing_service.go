package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubdesk/bracket-engine/models"
	"github.com/clubdesk/bracket-engine/repositories"
	"github.com/clubdesk/bracket-engine/scoring"
)

type StandingService interface {
	ListEventStandings(ctx context.Context, eventID int) ([]*models.RegistrationStanding, error)
	HeatLeaderboard(results []scoring.PlayerHeatResult) []scoring.HeatLeaderboardEntry
}

type standingService struct {
	eventRepo    repositories.EventRepository
	standingRepo repositories.StandingRepository
}

func NewStandingService(eventRepo repositories.EventRepository, standingRepo repositories.StandingRepository) StandingService {
	return &standingService{eventRepo: eventRepo, standingRepo: standingRepo}
}

// ListEventStandings returns the event's standings ranked by points, set
// difference and matches won. Rows are fetched unranked and ordered by the
// scoring comparator so the API and the SQL ordering cannot drift apart.
func (s *standingService) ListEventStandings(ctx context.Context, eventID int) ([]*models.RegistrationStanding, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event %d: %w", eventID, err)
	}

	standings, err := s.standingRepo.ListByEvent(ctx, nil, eventID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings for event %d: %w", eventID, err)
	}
	scoring.SortStandings(standings)
	return standings, nil
}

// HeatLeaderboard aggregates per-heat scores into ranked totals. It is pure
// computation over the request payload; nothing is persisted.
func (s *standingService) HeatLeaderboard(results []scoring.PlayerHeatResult) []scoring.HeatLeaderboardEntry {
	return scoring.HeatLeaderboard(results)
}
