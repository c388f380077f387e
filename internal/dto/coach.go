package dto

// SuggestChallengeRequest asks the AI coach for the next challenge.
// ExcludeID lets the client skip the fiche it just displayed.
type SuggestChallengeRequest struct {
	ExcludeID string `json:"excludeId"`
}

// FindByObjectiveRequest asks the coach for a fiche matching a free-text
// learning objective.
type FindByObjectiveRequest struct {
	Objective string `json:"objective" binding:"required,max=500"`
}

// CoachSuggestion is the validated structured reply of the provider.
type CoachSuggestion struct {
	Type      string `json:"type"` // "fiche" | "quiz"
	FicheID   string `json:"ficheId"`
	Title     string `json:"title"`
	Reasoning string `json:"reasoning"`
}
