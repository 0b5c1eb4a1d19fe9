package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubdesk/bracket-engine/scoring"
	"github.com/clubdesk/bracket-engine/services"
)

type ResultHandler struct {
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

type recordResultRequest struct {
	Sets []scoring.SetResult `json:"sets"`
}

// RecordResultHandler godoc
// @Summary      Record a match result
// @Description  Stores the set scores, advances winner and loser, resolves walkovers and updates standings.
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        eventID     path      int                  true  "Event ID"
// @Param        bracketUID  path      string               true  "Bracket match UID, e.g. WB-1-2"
// @Param        sets        body      recordResultRequest  true  "Per-set scores, side 1 first"
// @Success      200  {object}  models.Match
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /events/{eventID}/matches/{bracketUID}/result [post]
func (h *ResultHandler) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	bracketUID := chi.URLParam(r, "bracketUID")
	if bracketUID == "" {
		badRequestResponse(w, r, errors.New("missing bracketUID in URL path"))
		return
	}

	var input recordResultRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Sets) == 0 {
		badRequestResponse(w, r, errors.New("sets must not be empty"))
		return
	}
	for _, set := range input.Sets {
		if set.Score1 < 0 || set.Score2 < 0 {
			badRequestResponse(w, r, errors.New("set scores must not be negative"))
			return
		}
	}

	match, err := h.resultService.RecordResult(r.Context(), eventID, bracketUID, input.Sets)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
