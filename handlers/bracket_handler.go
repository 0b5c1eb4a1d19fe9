package handlers

import (
	"fmt"
	"net/http"

	"github.com/clubdesk/bracket-engine/brackets"
	"github.com/clubdesk/bracket-engine/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

type generateBracketRequest struct {
	Participants []brackets.ParticipantSeed `json:"participants"`
}

// GenerateBracketHandler godoc
// @Summary      Generate the bracket for an event
// @Description  Runs the event's configured format generator and persists the matches.
// @Tags         brackets
// @Accept       json
// @Produce      json
// @Param        eventID       path      int                     true  "Event ID"
// @Param        participants  body      generateBracketRequest  true  "Seeded participant list"
// @Success      201  {object}  services.GenerationResult
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /events/{eventID}/bracket [post]
func (h *BracketHandler) GenerateBracketHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input generateBracketRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	seen := make(map[int]bool, len(input.Participants))
	for _, p := range input.Participants {
		if p.RegistrationID <= 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid registration_id: %d", p.RegistrationID))
			return
		}
		if seen[p.RegistrationID] {
			badRequestResponse(w, r, fmt.Errorf("duplicate registration_id: %d", p.RegistrationID))
			return
		}
		seen[p.RegistrationID] = true
	}

	result, err := h.bracketService.GenerateAndSaveBracket(r.Context(), eventID, input.Participants)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracketHandler godoc
// @Summary      Get an event's bracket
// @Description  Returns the event, all its matches and the current standings.
// @Tags         brackets
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {object}  services.EventBracket
// @Failure      404  {object}  map[string]interface{}
// @Router       /events/{eventID}/bracket [get]
func (h *BracketHandler) GetBracketHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.GetEventBracket(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, bracket, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
