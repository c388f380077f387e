package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/riadhbennourdine/pharmia/internal/dto"
	"github.com/riadhbennourdine/pharmia/internal/repository"
	"github.com/riadhbennourdine/pharmia/pkg/gemini"
)

var (
	// ErrCoachUnconfigured: no provider credential present. Permanent
	// until an operator fixes the configuration (503).
	ErrCoachUnconfigured = errors.New("le coach IA n'est pas configuré")
	// ErrCoachUpstream: the provider call failed or its reply did not
	// parse as the expected structure. Transient; the client may retry.
	ErrCoachUpstream = errors.New("le coach IA n'a pas pu produire de suggestion")
)

// TextGenerator is the generative-text provider contract. Satisfied by
// *gemini.Client; tests substitute a stub.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

// CoachService builds sanitized learner payloads, queries the provider and
// validates its structured reply. It reads the stores but never writes.
type CoachService interface {
	SuggestChallenge(ctx context.Context, userID, excludeID string) (*dto.CoachSuggestion, error)
	FindFicheByObjective(ctx context.Context, userID, objective string) (*dto.CoachSuggestion, error)
}

type coachService struct {
	repo      *repository.Repository
	generator TextGenerator
	logger    *zap.Logger
}

// NewCoachService creates the CoachService.
func NewCoachService(repo *repository.Repository, generator TextGenerator, logger *zap.Logger) CoachService {
	return &coachService{repo: repo, generator: generator, logger: logger}
}

// learnerProfile is the sanitized payload sent upstream: derived learning
// state only, never email, username or any other PII.
type learnerProfile struct {
	SkillLevel   string   `json:"skillLevel"`
	ReadFicheIDs []string `json:"readFicheIds"`
	QuizScores   []int    `json:"quizScores"`
}

// catalogEntry is the per-fiche summary shared with the provider.
type catalogEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	HasQuiz bool   `json:"hasQuiz"`
}

func (s *coachService) SuggestChallenge(ctx context.Context, userID, excludeID string) (*dto.CoachSuggestion, error) {
	profile, catalog, err := s.buildContext(ctx, userID, excludeID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Tu es un coach pédagogique pour une application de formation officinale.
Profil de l'apprenant (anonymisé): %s
Catalogue des mémofiches disponibles: %s

Choisis LE prochain défi le plus utile pour cet apprenant: soit la lecture d'une fiche
non lue, soit un quiz d'une fiche déjà lue ("hasQuiz" doit être vrai pour un quiz).
Réponds UNIQUEMENT avec un objet JSON de la forme:
{"type": "fiche" ou "quiz", "ficheId": "<id du catalogue>", "title": "<titre>", "reasoning": "<justification courte en français>"}`,
		mustJSON(profile), mustJSON(catalog))

	return s.ask(ctx, prompt, catalog)
}

func (s *coachService) FindFicheByObjective(ctx context.Context, userID, objective string) (*dto.CoachSuggestion, error) {
	profile, catalog, err := s.buildContext(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Tu es un coach pédagogique pour une application de formation officinale.
Profil de l'apprenant (anonymisé): %s
Catalogue des mémofiches disponibles: %s
Objectif exprimé par l'apprenant: %q

Choisis la fiche du catalogue la plus pertinente pour cet objectif.
Réponds UNIQUEMENT avec un objet JSON de la forme:
{"type": "fiche" ou "quiz", "ficheId": "<id du catalogue>", "title": "<titre>", "reasoning": "<justification courte en français>"}`,
		mustJSON(profile), mustJSON(catalog), objective)

	return s.ask(ctx, prompt, catalog)
}

func (s *coachService) buildContext(ctx context.Context, userID, excludeID string) (*learnerProfile, []catalogEntry, error) {
	if s.generator == nil || !s.generator.Configured() {
		return nil, nil, ErrCoachUnconfigured
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		s.logger.Error("lecture du profil apprenant", zap.Error(err))
		return nil, nil, err
	}

	fiches, err := s.repo.MemoFiche.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	scores := make([]int, 0, len(user.QuizHistory))
	for _, a := range user.QuizHistory {
		scores = append(scores, a.Score)
	}

	profile := &learnerProfile{
		SkillLevel:   string(user.SkillLevel),
		ReadFicheIDs: user.ReadFicheIDs,
		QuizScores:   scores,
	}
	if profile.ReadFicheIDs == nil {
		profile.ReadFicheIDs = []string{}
	}

	catalog := make([]catalogEntry, 0, len(fiches))
	for i := range fiches {
		if fiches[i].FicheID == excludeID {
			continue
		}
		catalog = append(catalog, catalogEntry{
			ID:      fiches[i].FicheID,
			Title:   fiches[i].Title,
			HasQuiz: fiches[i].HasQuiz(),
		})
	}

	return profile, catalog, nil
}

// ask sends the prompt and validates the reply. A malformed upstream
// payload is never propagated to the caller.
func (s *coachService) ask(ctx context.Context, prompt string, catalog []catalogEntry) (*dto.CoachSuggestion, error) {
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, gemini.ErrUnconfigured) {
			return nil, ErrCoachUnconfigured
		}
		s.logger.Warn("appel au fournisseur génératif", zap.Error(err))
		return nil, ErrCoachUpstream
	}

	var suggestion dto.CoachSuggestion
	if err := json.Unmarshal([]byte(extractJSON(raw)), &suggestion); err != nil {
		s.logger.Warn("réponse du coach non analysable", zap.Error(err))
		return nil, ErrCoachUpstream
	}

	if suggestion.Type != "fiche" && suggestion.Type != "quiz" {
		return nil, ErrCoachUpstream
	}
	found := false
	for _, entry := range catalog {
		if entry.ID == suggestion.FicheID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCoachUpstream
	}

	return &suggestion, nil
}

// extractJSON strips markdown code fences and surrounding prose, keeping
// the outermost JSON object. The provider is asked for pure JSON but does
// not always comply.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			return s[i : j+1]
		}
	}
	return s
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
