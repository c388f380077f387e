package model

import (
	"fmt"
	"strings"
)

// Role is the closed user-role enumeration. Older data carried variant
// spellings ('admin', 'Préparateur'); every comparison in the codebase goes
// through this type, never through raw strings.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleFormateur   Role = "Formateur"
	RolePharmacien  Role = "Pharmacien"
	RolePreparateur Role = "Preparateur"
)

// ParseRole maps a string, including legacy spellings, to its canonical Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "formateur":
		return RoleFormateur, nil
	case "pharmacien":
		return RolePharmacien, nil
	case "preparateur", "préparateur":
		return RolePreparateur, nil
	default:
		return "", fmt.Errorf("rôle inconnu: %q", s)
	}
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the four canonical roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFormateur, RolePharmacien, RolePreparateur:
		return true
	}
	return false
}

// SkillLevel is the derived learner proficiency. It ratchets upward only:
// nothing ever recomputes it downward.
type SkillLevel string

const (
	SkillDebutant      SkillLevel = "Débutant"
	SkillIntermediaire SkillLevel = "Intermédiaire"
	SkillExpert        SkillLevel = "Expert"
)

// Rank orders skill levels for monotonicity checks.
func (s SkillLevel) Rank() int {
	switch s {
	case SkillIntermediaire:
		return 1
	case SkillExpert:
		return 2
	default:
		return 0
	}
}
