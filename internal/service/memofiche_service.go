package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/riadhbennourdine/pharmia/internal/dto"
	"github.com/riadhbennourdine/pharmia/internal/model"
	"github.com/riadhbennourdine/pharmia/internal/policy"
	"github.com/riadhbennourdine/pharmia/internal/repository"
)

var (
	ErrFicheNotFound = errors.New("mémofiche introuvable")
	ErrThemeRequired = errors.New("le thème de la mémofiche est requis")
)

// MemoFicheService orchestrates content mutations: policy enforcement,
// taxonomy dedup resolution, atomic persistence.
type MemoFicheService interface {
	Create(ctx context.Context, actorRole model.Role, req *dto.MemoFicheRequest) (*model.MemoFiche, error)
	Update(ctx context.Context, actorRole model.Role, id string, patch *dto.MemoFichePatch) (*model.MemoFiche, error)
	Delete(ctx context.Context, actorRole model.Role, id string) error
	GetByID(ctx context.Context, id string) (*model.MemoFiche, error)
	GetCatalog(ctx context.Context) (*dto.CatalogResponse, error)
}

type memoFicheService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMemoFicheService creates the MemoFicheService.
func NewMemoFicheService(repo *repository.Repository, logger *zap.Logger) MemoFicheService {
	return &memoFicheService{repo: repo, logger: logger}
}

func (s *memoFicheService) Create(ctx context.Context, actorRole model.Role, req *dto.MemoFicheRequest) (*model.MemoFiche, error) {
	if !policy.Allow(actorRole, policy.ActionMemoFicheCreate) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Theme.Nom) == "" {
		return nil, ErrThemeRequired
	}

	level := req.Level
	if level == "" {
		level = string(model.SkillDebutant)
	}

	fiche := &model.MemoFiche{
		Title:             req.Title,
		ShortDescription:  req.ShortDescription,
		ImageURL:          req.ImageURL,
		FlashSummary:      req.FlashSummary,
		Level:             level,
		MemoContent:       req.MemoContent,
		Flashcards:        req.Flashcards,
		Quiz:              req.Quiz,
		GlossaryTerms:     req.GlossaryTerms,
		ExternalResources: req.ExternalResources,
		KahootURL:         req.KahootURL,
	}

	// Taxonomy rows and the fiche commit together or not at all: a theme
	// inserted without its fiche would be a partial write.
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := resolveTheme(ctx, tx, fiche, req.Theme.Nom); err != nil {
			return err
		}
		if err := resolveSysteme(ctx, tx, fiche, req.SystemeOrgane); err != nil {
			return err
		}
		return tx.MemoFiche.Create(ctx, fiche)
	})
	if err != nil {
		s.logger.Error("création de la mémofiche", zap.Error(err), zap.String("title", req.Title))
		return nil, err
	}

	return fiche, nil
}

func (s *memoFicheService) Update(ctx context.Context, actorRole model.Role, id string, patch *dto.MemoFichePatch) (*model.MemoFiche, error) {
	if !policy.Allow(actorRole, policy.ActionMemoFicheUpdate) {
		return nil, ErrForbidden
	}

	fiche, err := s.repo.MemoFiche.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFicheNotFound
		}
		return nil, err
	}

	applyPatch(fiche, patch)

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if patch.Theme != nil {
			if strings.TrimSpace(patch.Theme.Nom) == "" {
				return ErrThemeRequired
			}
			if err := resolveTheme(ctx, tx, fiche, patch.Theme.Nom); err != nil {
				return err
			}
		}
		if patch.SystemeOrgane != nil {
			if err := resolveSysteme(ctx, tx, fiche, patch.SystemeOrgane); err != nil {
				return err
			}
		}
		return tx.MemoFiche.Update(ctx, fiche)
	})
	if err != nil {
		if errors.Is(err, ErrThemeRequired) {
			return nil, err
		}
		s.logger.Error("mise à jour de la mémofiche", zap.Error(err), zap.String("fiche_id", id))
		return nil, err
	}

	return fiche, nil
}

func (s *memoFicheService) Delete(ctx context.Context, actorRole model.Role, id string) error {
	if !policy.Allow(actorRole, policy.ActionMemoFicheDelete) {
		return ErrForbidden
	}

	// Taxonomy rows are never garbage-collected, even when the last fiche
	// referencing them disappears.
	if err := s.repo.MemoFiche.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFicheNotFound
		}
		s.logger.Error("suppression de la mémofiche", zap.Error(err), zap.String("fiche_id", id))
		return err
	}
	return nil
}

func (s *memoFicheService) GetByID(ctx context.Context, id string) (*model.MemoFiche, error) {
	fiche, err := s.repo.MemoFiche.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFicheNotFound
		}
		return nil, err
	}
	return fiche, nil
}

func (s *memoFicheService) GetCatalog(ctx context.Context) (*dto.CatalogResponse, error) {
	themes, err := s.repo.Theme.List(ctx)
	if err != nil {
		return nil, err
	}
	systemes, err := s.repo.SystemeOrgane.List(ctx)
	if err != nil {
		return nil, err
	}
	fiches, err := s.repo.MemoFiche.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.CatalogResponse{
		Themes:          themes,
		SystemesOrganes: systemes,
		Memofiches:      make([]dto.MemoFicheResponse, 0, len(fiches)),
	}
	for i := range fiches {
		out.Memofiches = append(out.Memofiches, dto.NewMemoFicheResponse(&fiches[i]))
	}
	return out, nil
}

// resolveTheme rewrites the fiche's denormalized theme columns through the
// find-or-create dedup rule: an existing Nom contributes its id, an unseen
// Nom gets a fresh row.
func resolveTheme(ctx context.Context, tx *repository.Repository, fiche *model.MemoFiche, nom string) error {
	theme, err := tx.Theme.FindOrCreateByNom(ctx, strings.TrimSpace(nom), "")
	if err != nil {
		return err
	}
	fiche.ThemeID = theme.ThemeID
	fiche.ThemeNom = theme.Nom
	return nil
}

// resolveSysteme does the same for systeme_organe, substituting the
// "Non applicable" sentinel when the reference is absent.
func resolveSysteme(ctx context.Context, tx *repository.Repository, fiche *model.MemoFiche, ref *dto.TaxonomyRef) error {
	if ref == nil || strings.TrimSpace(ref.Nom) == "" {
		fiche.SystemeID = model.SystemeNonApplicableID
		fiche.SystemeNom = model.SystemeNonApplicableNom
		return nil
	}
	systeme, err := tx.SystemeOrgane.FindOrCreateByNom(ctx, strings.TrimSpace(ref.Nom), "")
	if err != nil {
		return err
	}
	fiche.SystemeID = systeme.SystemeID
	fiche.SystemeNom = systeme.Nom
	return nil
}

// applyPatch copies the fields present in the patch onto the fiche.
// FicheID and CreatedAt are deliberately unreachable from here.
func applyPatch(fiche *model.MemoFiche, patch *dto.MemoFichePatch) {
	if patch.Title != nil {
		fiche.Title = *patch.Title
	}
	if patch.ShortDescription != nil {
		fiche.ShortDescription = *patch.ShortDescription
	}
	if patch.ImageURL != nil {
		fiche.ImageURL = *patch.ImageURL
	}
	if patch.FlashSummary != nil {
		fiche.FlashSummary = *patch.FlashSummary
	}
	if patch.Level != nil {
		fiche.Level = *patch.Level
	}
	if patch.MemoContent != nil {
		fiche.MemoContent = *patch.MemoContent
	}
	if patch.Flashcards != nil {
		fiche.Flashcards = *patch.Flashcards
	}
	if patch.Quiz != nil {
		fiche.Quiz = *patch.Quiz
	}
	if patch.GlossaryTerms != nil {
		fiche.GlossaryTerms = *patch.GlossaryTerms
	}
	if patch.ExternalResources != nil {
		fiche.ExternalResources = *patch.ExternalResources
	}
	if patch.KahootURL != nil {
		fiche.KahootURL = *patch.KahootURL
	}
}
