package dto

import (
	"fmt"

	"github.com/riadhbennourdine/pharmia/internal/model"
	"github.com/riadhbennourdine/pharmia/internal/policy"
)

// UserResponse is the sanitized user payload: never the password hash.
type UserResponse struct {
	ID                      string              `json:"id"`
	Email                   string              `json:"email"`
	Username                string              `json:"username"`
	Role                    string              `json:"role"`
	PharmacienResponsableID *string             `json:"pharmacienResponsableId,omitempty"`
	SkillLevel              string              `json:"skillLevel"`
	ReadFicheIDs            []string            `json:"readFicheIds"`
	QuizHistory             []model.QuizAttempt `json:"quizHistory"`
	Badges                  []string            `json:"badges"`
	SubscriptionStatus      string              `json:"subscriptionStatus"`
	Consigne                string              `json:"consigne,omitempty"`
	LastLogin               string              `json:"lastLogin,omitempty"`
	CreatedAt               string              `json:"createdAt"`
	FichesReadCount         int                 `json:"fichesReadCount"`
	AverageQuizScore        string              `json:"averageQuizScore"`
}

// NewUserResponse maps a model.User to its API shape.
func NewUserResponse(u *model.User) UserResponse {
	avg := "N/A"
	if len(u.QuizHistory) > 0 {
		avg = fmt.Sprintf("%.1f", u.QuizHistory.AverageScore())
	}

	resp := UserResponse{
		ID:                      u.UserID,
		Email:                   u.Email,
		Username:                u.Username,
		Role:                    string(u.Role),
		PharmacienResponsableID: u.PharmacienResponsableID,
		SkillLevel:              string(u.SkillLevel),
		ReadFicheIDs:            u.ReadFicheIDs,
		QuizHistory:             u.QuizHistory,
		Badges:                  u.Badges,
		SubscriptionStatus:      u.SubscriptionStatus,
		Consigne:                u.Consigne,
		CreatedAt:               u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		FichesReadCount:         len(u.ReadFicheIDs),
		AverageQuizScore:        avg,
	}
	if resp.ReadFicheIDs == nil {
		resp.ReadFicheIDs = []string{}
	}
	if resp.QuizHistory == nil {
		resp.QuizHistory = []model.QuizAttempt{}
	}
	if resp.Badges == nil {
		resp.Badges = []string{}
	}
	if u.LastLogin != nil {
		resp.LastLogin = u.LastLogin.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// MeResponse is the authenticated-user payload with derived capability flags.
type MeResponse struct {
	User         UserResponse        `json:"user"`
	Capabilities policy.Capabilities `json:"capabilities"`
}

// AdminUserUpdateRequest patches a user record. Only present fields are
// applied; the Preparateur/responsable invariant is re-checked by the service.
type AdminUserUpdateRequest struct {
	Role                    *string `json:"role"`
	SubscriptionStatus      *string `json:"subscriptionStatus"`
	Consigne                *string `json:"consigne"`
	PharmacienResponsableID *string `json:"pharmacienResponsableId"`
}
