package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riadhbennourdine/pharmia/internal/dto"
	"github.com/riadhbennourdine/pharmia/internal/service"
	"github.com/riadhbennourdine/pharmia/pkg/response"
)

// CoachHandler serves the AI-coach endpoints.
type CoachHandler struct {
	coachSvc service.CoachService
}

// NewCoachHandler creates the CoachHandler.
func NewCoachHandler(coachSvc service.CoachService) *CoachHandler {
	return &CoachHandler{coachSvc: coachSvc}
}

// SuggestChallenge asks the coach for the caller's next challenge.
// POST /api/ai-coach/suggest-challenge
func (h *CoachHandler) SuggestChallenge(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	// The body is optional; an empty one means no exclusion.
	var req dto.SuggestChallengeRequest
	_ = c.ShouldBindJSON(&req)

	suggestion, err := h.coachSvc.SuggestChallenge(c.Request.Context(), userID, req.ExcludeID)
	if err != nil {
		h.handleCoachError(c, err)
		return
	}
	response.OK(c, suggestion)
}

// FindByObjective asks the coach for the fiche matching a free-text goal.
// POST /api/ai-coach/find-by-objective
func (h *CoachHandler) FindByObjective(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.FindByObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	suggestion, err := h.coachSvc.FindFicheByObjective(c.Request.Context(), userID, req.Objective)
	if err != nil {
		h.handleCoachError(c, err)
		return
	}
	response.OK(c, suggestion)
}

func (h *CoachHandler) handleCoachError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCoachUnconfigured):
		response.ServiceUnavailable(c, 15001, "le coach IA n'est pas configuré")
	case errors.Is(err, service.ErrCoachUpstream):
		response.Error(c, http.StatusInternalServerError, 15002, "le coach IA n'a pas pu produire de suggestion")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "utilisateur introuvable")
	default:
		response.InternalError(c)
	}
}
