package handlers

import (
	"errors"
	"net/http"

	"github.com/clubdesk/bracket-engine/scoring"
	"github.com/clubdesk/bracket-engine/services"
)

type StandingHandler struct {
	standingService services.StandingService
}

func NewStandingHandler(standingService services.StandingService) *StandingHandler {
	return &StandingHandler{standingService: standingService}
}

// ListStandingsHandler godoc
// @Summary      List event standings
// @Description  Returns the event's standings ranked by points, set difference and matches won.
// @Tags         standings
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {array}   models.RegistrationStanding
// @Failure      404  {object}  map[string]interface{}
// @Router       /events/{eventID}/standings [get]
func (h *StandingHandler) ListStandingsHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingService.ListEventStandings(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type heatLeaderboardRequest struct {
	Results []scoring.PlayerHeatResult `json:"results"`
}

// HeatLeaderboardHandler godoc
// @Summary      Compute a heat leaderboard
// @Description  Aggregates per-position heat scores into ranked totals. Pure computation, nothing is stored.
// @Tags         standings
// @Accept       json
// @Produce      json
// @Param        results  body      heatLeaderboardRequest  true  "Per-player heat scores"
// @Success      200  {array}   scoring.HeatLeaderboardEntry
// @Failure      400  {object}  map[string]interface{}
// @Router       /leaderboards/heats [post]
func (h *StandingHandler) HeatLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	var input heatLeaderboardRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	for _, result := range input.Results {
		if result.RegistrationID <= 0 {
			badRequestResponse(w, r, errors.New("results must carry positive registration ids"))
			return
		}
	}

	leaderboard := h.standingService.HeatLeaderboard(input.Results)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": leaderboard}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
