package dto

import "github.com/riadhbennourdine/pharmia/internal/model"

// TaxonomyRef references a theme or systeme_organe by display name.
// The id, when present, is advisory: the server always re-resolves by Nom.
type TaxonomyRef struct {
	ID  string `json:"id"`
	Nom string `json:"Nom" binding:"required"`
}

// MemoFicheRequest creates a fiche. The server assigns id and createdAt.
type MemoFicheRequest struct {
	Title             string                   `json:"title" binding:"required,max=300"`
	ShortDescription  string                   `json:"shortDescription"`
	ImageURL          string                   `json:"imageUrl"`
	FlashSummary      string                   `json:"flashSummary"`
	Level             string                   `json:"level"`
	MemoContent       []model.Section          `json:"memoContent"`
	Flashcards        []model.Flashcard        `json:"flashcards"`
	Quiz              []model.QuizQuestion     `json:"quiz"`
	GlossaryTerms     []model.GlossaryTerm     `json:"glossaryTerms"`
	ExternalResources []model.ExternalResource `json:"externalResources"`
	KahootURL         string                   `json:"kahootUrl"`
	Theme             TaxonomyRef              `json:"theme" binding:"required"`
	SystemeOrgane     *TaxonomyRef             `json:"systeme_organe"`
}

// MemoFichePatch updates a fiche. Absent fields are left untouched.
// Identity fields (id, createdAt) are never accepted from the body.
type MemoFichePatch struct {
	Title             *string                   `json:"title"`
	ShortDescription  *string                   `json:"shortDescription"`
	ImageURL          *string                   `json:"imageUrl"`
	FlashSummary      *string                   `json:"flashSummary"`
	Level             *string                   `json:"level"`
	MemoContent       *[]model.Section          `json:"memoContent"`
	Flashcards        *[]model.Flashcard        `json:"flashcards"`
	Quiz              *[]model.QuizQuestion     `json:"quiz"`
	GlossaryTerms     *[]model.GlossaryTerm     `json:"glossaryTerms"`
	ExternalResources *[]model.ExternalResource `json:"externalResources"`
	KahootURL         *string                   `json:"kahootUrl"`
	Theme             *TaxonomyRef              `json:"theme"`
	SystemeOrgane     *TaxonomyRef              `json:"systeme_organe"`
}

// MemoFicheResponse is a stored fiche with its resolved taxonomy.
type MemoFicheResponse struct {
	model.MemoFiche
	Theme         TaxonomyRef `json:"theme"`
	SystemeOrgane TaxonomyRef `json:"systeme_organe"`
}

// NewMemoFicheResponse wraps a model.MemoFiche, re-exposing the denormalized
// taxonomy columns as nested objects.
func NewMemoFicheResponse(f *model.MemoFiche) MemoFicheResponse {
	return MemoFicheResponse{
		MemoFiche:     *f,
		Theme:         TaxonomyRef{ID: f.ThemeID, Nom: f.ThemeNom},
		SystemeOrgane: TaxonomyRef{ID: f.SystemeID, Nom: f.SystemeNom},
	}
}

// CatalogResponse is the full public catalog (GET /api/data).
type CatalogResponse struct {
	Themes          []model.Theme         `json:"themes"`
	SystemesOrganes []model.SystemeOrgane `json:"systemesOrganes"`
	Memofiches      []MemoFicheResponse   `json:"memofiches"`
}
