package dto

// ReadFicheRequest records a fiche read (idempotent).
type ReadFicheRequest struct {
	FicheID string `json:"ficheId" binding:"required"`
}

// QuizResultRequest appends a quiz attempt to the history.
type QuizResultRequest struct {
	QuizID string `json:"quizId" binding:"required"`
	Score  *int   `json:"score" binding:"required"` // pointer so 0 passes required
}

// LearningStateResponse returns the learner state after a recording call,
// so the client can show newly earned badges or a level-up immediately.
type LearningStateResponse struct {
	SkillLevel   string   `json:"skillLevel"`
	Badges       []string `json:"badges"`
	ReadFicheIDs []string `json:"readFicheIds"`
	QuizCount    int      `json:"quizCount"`
}
