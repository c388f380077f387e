package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/riadhbennourdine/pharmia/internal/model"
	"github.com/riadhbennourdine/pharmia/internal/repository"
)

var (
	ErrInvalidScore = errors.New("le score doit être compris entre 0 et 100")
)

// Skill-level thresholds. The level moves at most one step per recompute
// and never moves down.
const (
	intermediaireMinQuizzes = 5
	intermediaireMinAvg     = 60.0
	expertMinQuizzes        = 10
	expertMinAvg            = 80.0
)

// LearnerService records learning history and recomputes the derived state
// (skill level, badges) as a side effect of each mutation.
type LearnerService interface {
	// RecordFicheRead adds ficheID to the user's read set. Reading the
	// same fiche twice is a no-op, not an error.
	RecordFicheRead(ctx context.Context, userID, ficheID string) (*model.User, error)
	// RecordQuizResult appends to the quiz history unconditionally:
	// re-taking a quiz adds a new entry, history is never rewritten.
	RecordQuizResult(ctx context.Context, userID, quizID string, score int) (*model.User, error)
	GetLearner(ctx context.Context, userID string) (*model.User, error)
}

type learnerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLearnerService creates the LearnerService.
func NewLearnerService(repo *repository.Repository, logger *zap.Logger) LearnerService {
	return &learnerService{repo: repo, logger: logger}
}

func (s *learnerService) RecordFicheRead(ctx context.Context, userID, ficheID string) (*model.User, error) {
	user, err := s.repo.User.UpdateLearningState(ctx, userID, func(u *model.User) error {
		u.ReadFicheIDs.AddUnique(ficheID)
		recomputeBadges(u)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("enregistrement de la lecture", zap.Error(err), zap.String("fiche_id", ficheID))
		return nil, err
	}
	return user, nil
}

func (s *learnerService) RecordQuizResult(ctx context.Context, userID, quizID string, score int) (*model.User, error) {
	if score < 0 || score > 100 {
		return nil, ErrInvalidScore
	}

	user, err := s.repo.User.UpdateLearningState(ctx, userID, func(u *model.User) error {
		u.QuizHistory = append(u.QuizHistory, model.QuizAttempt{
			QuizID:      quizID,
			Score:       score,
			CompletedAt: time.Now(),
		})
		recomputeSkillLevel(u)
		recomputeBadges(u)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("enregistrement du résultat de quiz", zap.Error(err), zap.String("quiz_id", quizID))
		return nil, err
	}
	return user, nil
}

func (s *learnerService) GetLearner(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// recomputeSkillLevel applies the ratchet over the full history. The first
// matching clause wins: at most one level up per call, even when the
// history satisfies both thresholds at once.
func recomputeSkillLevel(u *model.User) {
	n := len(u.QuizHistory)
	avg := u.QuizHistory.AverageScore()

	switch u.SkillLevel {
	case model.SkillDebutant:
		if n >= intermediaireMinQuizzes && avg >= intermediaireMinAvg {
			u.SkillLevel = model.SkillIntermediaire
		}
	case model.SkillIntermediaire:
		if n >= expertMinQuizzes && avg >= expertMinAvg {
			u.SkillLevel = model.SkillExpert
		}
	}
}

// recomputeBadges unions in every badge whose condition holds. AddUnique
// keeps awarding idempotent; nothing is ever removed.
func recomputeBadges(u *model.User) {
	if len(u.QuizHistory) >= 1 {
		u.Badges.AddUnique(model.BadgePremierQuiz)
	}
	if len(u.ReadFicheIDs) >= 3 {
		u.Badges.AddUnique(model.BadgeLecteurAssidu)
	}
	if n := len(u.QuizHistory); n > 0 && u.QuizHistory[n-1].Score == 100 {
		u.Badges.AddUnique(model.BadgeSansFaute)
	}
	if u.SkillLevel.Rank() >= model.SkillIntermediaire.Rank() {
		u.Badges.AddUnique(model.BadgeNiveauIntermediaire)
	}
	if u.SkillLevel == model.SkillExpert {
		u.Badges.AddUnique(model.BadgeNiveauExpert)
	}
}
