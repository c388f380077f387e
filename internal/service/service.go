package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/riadhbennourdine/pharmia/config"
	"github.com/riadhbennourdine/pharmia/internal/repository"
	"github.com/riadhbennourdine/pharmia/pkg/jwt"
	"github.com/riadhbennourdine/pharmia/pkg/redis"
)

// Errors shared across services.
var (
	ErrForbidden    = errors.New("action non autorisée pour ce rôle")
	ErrUserNotFound = errors.New("utilisateur introuvable")
)

// Service aggregates all business services.
type Service struct {
	Auth      AuthService
	User      UserService
	MemoFiche MemoFicheService
	Learner   LearnerService
	Coach     CoachService
	Export    ExportService
}

// NewService wires the dependency chain: Repository → Service.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	generator TextGenerator,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:      NewUserService(repo, logger),
		MemoFiche: NewMemoFicheService(repo, logger),
		Learner:   NewLearnerService(repo, logger),
		Coach:     NewCoachService(repo, generator, logger),
		Export:    NewExportService(repo, logger),
	}
}
