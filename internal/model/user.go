package model

import (
	"database/sql/driver"
	"time"
)

// QuizAttempt is one entry of the append-only quiz history.
type QuizAttempt struct {
	QuizID      string    `json:"quizId"`
	Score       int       `json:"score"` // 0..100
	CompletedAt time.Time `json:"completedAt"`
}

// QuizAttempts maps a JSONB column holding the quiz history. Entries are
// only ever appended, never rewritten or deduplicated.
type QuizAttempts []QuizAttempt

func (q *QuizAttempts) Scan(src interface{}) error  { return jsonbScan(src, q) }
func (q QuizAttempts) Value() (driver.Value, error) { return jsonbValue(q) }

// AverageScore returns the mean score over the whole history, 0 when empty.
func (q QuizAttempts) AverageScore() float64 {
	if len(q) == 0 {
		return 0
	}
	sum := 0
	for _, a := range q {
		sum += a.Score
	}
	return float64(sum) / float64(len(q))
}

// User is the credential store record plus the derived learning state.
// skill_level and badges are written only by the learning-state recompute;
// read_fiche_ids and quiz_history only by the recording endpoints.
type User struct {
	UserID                  string       `gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email                   string       `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"        json:"email"`
	Username                string       `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_username"     json:"username"`
	PasswordHash            string       `gorm:"type:varchar(255);not null"                                    json:"-"`
	Role                    Role         `gorm:"type:varchar(20);not null"                                     json:"role"`
	PharmacienResponsableID *string      `gorm:"column:pharmacien_responsable_id;type:uuid"                    json:"pharmacienResponsableId,omitempty"`
	SkillLevel              SkillLevel   `gorm:"type:varchar(20);not null;default:'Débutant'"                  json:"skillLevel"`
	ReadFicheIDs            StringArray  `gorm:"column:read_fiche_ids;type:text[];not null;default:'{}'"       json:"readFicheIds"`
	QuizHistory             QuizAttempts `gorm:"type:jsonb;not null;default:'[]'"                              json:"quizHistory"`
	Badges                  StringArray  `gorm:"type:text[];not null;default:'{}'"                             json:"badges"`
	SubscriptionStatus      string       `gorm:"type:varchar(20);not null;default:'free'"                      json:"subscriptionStatus"`
	Consigne                string       `gorm:"type:text"                                                     json:"consigne,omitempty"`
	LastLogin               *time.Time   `gorm:"column:last_login"                                             json:"lastLogin,omitempty"`
	CreatedAt               time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"                            json:"createdAt"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
