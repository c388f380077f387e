// Package policy is the single source of truth for role-based authorization.
// Route guards and service-layer checks both call Allow; no raw role
// comparison happens anywhere else.
package policy

import "github.com/riadhbennourdine/pharmia/internal/model"

// Action is a guarded operation.
type Action string

const (
	ActionMemoFicheCreate   Action = "memofiche.create"
	ActionMemoFicheUpdate   Action = "memofiche.update"
	ActionMemoFicheDelete   Action = "memofiche.delete"
	ActionMemoFicheGenerate Action = "memofiche.generate"
	ActionCatalogView       Action = "catalog.view"
	ActionLearnerViewOwn    Action = "learner.view-own"
	ActionPreparateurStats  Action = "preparateur.view-stats"
	ActionUserManage        Action = "user.manage"
)

// Deletion and generation are deliberately Admin-only: earlier revisions of
// the product disagreed between route guards and client-side flags, and the
// restrictive reading won.
var table = map[Action]map[model.Role]bool{
	ActionMemoFicheCreate: {
		model.RoleAdmin:     true,
		model.RoleFormateur: true,
	},
	ActionMemoFicheUpdate: {
		model.RoleAdmin:     true,
		model.RoleFormateur: true,
	},
	ActionMemoFicheDelete: {
		model.RoleAdmin: true,
	},
	ActionMemoFicheGenerate: {
		model.RoleAdmin: true,
	},
	ActionCatalogView: {
		model.RoleAdmin:       true,
		model.RoleFormateur:   true,
		model.RolePharmacien:  true,
		model.RolePreparateur: true,
	},
	ActionLearnerViewOwn: {
		model.RoleAdmin:       true,
		model.RoleFormateur:   true,
		model.RolePharmacien:  true,
		model.RolePreparateur: true,
	},
	ActionPreparateurStats: {
		model.RoleAdmin:      true,
		model.RolePharmacien: true, // own subordinates only, filtered in service
	},
	ActionUserManage: {
		model.RoleAdmin: true,
	},
}

// Allow reports whether role may perform action.
func Allow(role model.Role, action Action) bool {
	perms, ok := table[action]
	if !ok {
		return false
	}
	return perms[role]
}

// Capabilities are the derived booleans surfaced to the client alongside
// the user payload.
type Capabilities struct {
	CanGenerateMemoFiche bool `json:"canGenerateMemoFiche"`
	CanEditMemoFiches    bool `json:"canEditMemoFiches"`
	CanDeleteMemoFiches  bool `json:"canDeleteMemoFiches"`
	CanManageUsers       bool `json:"canManageUsers"`
}

// CapabilitiesFor derives the capability flags from the policy table.
func CapabilitiesFor(role model.Role) Capabilities {
	return Capabilities{
		CanGenerateMemoFiche: Allow(role, ActionMemoFicheGenerate),
		CanEditMemoFiches:    Allow(role, ActionMemoFicheUpdate),
		CanDeleteMemoFiches:  Allow(role, ActionMemoFicheDelete),
		CanManageUsers:       Allow(role, ActionUserManage),
	}
}
