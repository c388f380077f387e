package model

import "time"

// Theme is a taxonomy row deduplicated by display name: creating a fiche
// with an unseen Nom inserts a row, a seen Nom reuses the existing id.
type Theme struct {
	ThemeID     string    `gorm:"column:theme_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nom         string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_themes_nom"          json:"Nom"`
	Description string    `gorm:"type:text"                                                      json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                             json:"-"`
}

// TableName sets the table name.
func (Theme) TableName() string { return "themes" }

// SystemeOrgane is the second taxonomy dimension, same dedup contract as Theme.
type SystemeOrgane struct {
	SystemeID   string    `gorm:"column:systeme_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nom         string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_systemes_organes_nom"  json:"Nom"`
	Description string    `gorm:"type:text"                                                        json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                               json:"-"`
}

// TableName sets the table name.
func (SystemeOrgane) TableName() string { return "systemes_organes" }

// Sentinel values substituted when a fiche arrives without a systeme_organe.
// No taxonomy row is created for them.
const (
	SystemeNonApplicableID  = "N/A"
	SystemeNonApplicableNom = "Non applicable"
)
