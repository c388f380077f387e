package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/riadhbennourdine/pharmia/internal/dto"
	"github.com/riadhbennourdine/pharmia/internal/model"
	"github.com/riadhbennourdine/pharmia/internal/service"
	"github.com/riadhbennourdine/pharmia/pkg/response"
)

// LearnerHandler serves the learner space and the learning-history
// recording endpoints.
type LearnerHandler struct {
	learnerSvc service.LearnerService
}

// NewLearnerHandler creates the LearnerHandler.
func NewLearnerHandler(learnerSvc service.LearnerService) *LearnerHandler {
	return &LearnerHandler{learnerSvc: learnerSvc}
}

// GetLearnerSpace returns the caller's learning state.
// GET /api/learner-space
func (h *LearnerHandler) GetLearnerSpace(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.learnerSvc.GetLearner(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "utilisateur introuvable")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, dto.NewUserResponse(user))
}

// RecordFicheRead marks a fiche as read for the caller.
// POST /api/users/me/read-fiches
func (h *LearnerHandler) RecordFicheRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReadFicheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	user, err := h.learnerSvc.RecordFicheRead(c.Request.Context(), userID, req.FicheID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "utilisateur introuvable")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, learningState(user))
}

// RecordQuizResult appends a quiz attempt for the caller.
// POST /api/users/me/quiz-history
func (h *LearnerHandler) RecordQuizResult(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.QuizResultRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	user, err := h.learnerSvc.RecordQuizResult(c.Request.Context(), userID, req.QuizID, *req.Score)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidScore):
			response.BadRequest(c, 14001, "le score doit être compris entre 0 et 100")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "utilisateur introuvable")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, learningState(user))
}

func learningState(u *model.User) dto.LearningStateResponse {
	state := dto.LearningStateResponse{
		SkillLevel:   string(u.SkillLevel),
		Badges:       u.Badges,
		ReadFicheIDs: u.ReadFicheIDs,
		QuizCount:    len(u.QuizHistory),
	}
	if state.Badges == nil {
		state.Badges = []string{}
	}
	if state.ReadFicheIDs == nil {
		state.ReadFicheIDs = []string{}
	}
	return state
}
