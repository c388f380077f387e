package handler

import "github.com/riadhbennourdine/pharmia/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	MemoFiche *MemoFicheHandler
	Learner   *LearnerHandler
	Coach     *CoachHandler
	Export    *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth, svc.User),
		User:      NewUserHandler(svc.User),
		MemoFiche: NewMemoFicheHandler(svc.MemoFiche),
		Learner:   NewLearnerHandler(svc.Learner),
		Coach:     NewCoachHandler(svc.Coach),
		Export:    NewExportHandler(svc.Export),
	}
}
