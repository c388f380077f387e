package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/riadhbennourdine/pharmia/internal/dto"
	"github.com/riadhbennourdine/pharmia/internal/model"
)

func setupUserService() (UserService, *mockUserRepo) {
	repo, userRepo, _, _, _ := newTestRepository()
	svc := NewUserService(repo, zap.NewNop())
	return svc, userRepo
}

func seedRoster(userRepo *mockUserRepo) (pharmacien, other *model.User, preparateurs []*model.User) {
	pharmacien = &model.User{Email: "marie@officine.fr", Username: "marie", PasswordHash: "x", Role: model.RolePharmacien}
	other = &model.User{Email: "jean@officine.fr", Username: "jean", PasswordHash: "x", Role: model.RolePharmacien}
	_ = userRepo.Create(context.Background(), pharmacien)
	_ = userRepo.Create(context.Background(), other)

	for _, u := range []*model.User{
		{Email: "lea@officine.fr", Username: "lea", PasswordHash: "x", Role: model.RolePreparateur, PharmacienResponsableID: &pharmacien.UserID},
		{Email: "paul@officine.fr", Username: "paul", PasswordHash: "x", Role: model.RolePreparateur, PharmacienResponsableID: &pharmacien.UserID},
		{Email: "nora@officine.fr", Username: "nora", PasswordHash: "x", Role: model.RolePreparateur, PharmacienResponsableID: &other.UserID},
	} {
		_ = userRepo.Create(context.Background(), u)
		preparateurs = append(preparateurs, u)
	}
	return pharmacien, other, preparateurs
}

// ── AdminUpdate ──

func TestAdminUpdate_PartialPatch(t *testing.T) {
	svc, userRepo := setupUserService()
	pharmacien, _, _ := seedRoster(userRepo)

	status := "premium"
	updated, err := svc.AdminUpdate(context.Background(), pharmacien.UserID, &dto.AdminUserUpdateRequest{
		SubscriptionStatus: &status,
	})
	if err != nil {
		t.Fatalf("AdminUpdate: %v", err)
	}
	if updated.SubscriptionStatus != "premium" {
		t.Errorf("statut attendu premium, obtenu %s", updated.SubscriptionStatus)
	}
	if updated.Role != model.RolePharmacien {
		t.Error("le rôle absent du patch doit rester inchangé")
	}
}

func TestAdminUpdate_PromotionToPreparateurNeedsResponsable(t *testing.T) {
	svc, userRepo := setupUserService()
	pharmacien, other, _ := seedRoster(userRepo)

	role := "Preparateur"
	_, err := svc.AdminUpdate(context.Background(), pharmacien.UserID, &dto.AdminUserUpdateRequest{Role: &role})
	if !errors.Is(err, ErrResponsableRequired) {
		t.Errorf("attendu ErrResponsableRequired, obtenu %v", err)
	}

	_, err = svc.AdminUpdate(context.Background(), pharmacien.UserID, &dto.AdminUserUpdateRequest{
		Role:                    &role,
		PharmacienResponsableID: &other.UserID,
	})
	if err != nil {
		t.Errorf("promotion avec responsable valide: %v", err)
	}
}

func TestAdminUpdate_ResponsableMustBePharmacien(t *testing.T) {
	svc, userRepo := setupUserService()
	_, _, preparateurs := seedRoster(userRepo)

	lea, paul := preparateurs[0], preparateurs[1]
	_, err := svc.AdminUpdate(context.Background(), lea.UserID, &dto.AdminUserUpdateRequest{
		PharmacienResponsableID: &paul.UserID,
	})
	if !errors.Is(err, ErrResponsableInvalid) {
		t.Errorf("attendu ErrResponsableInvalid, obtenu %v", err)
	}
}

func TestAdminUpdate_PromotionClearsResponsable(t *testing.T) {
	svc, userRepo := setupUserService()
	_, _, preparateurs := seedRoster(userRepo)

	role := "Pharmacien"
	updated, err := svc.AdminUpdate(context.Background(), preparateurs[0].UserID, &dto.AdminUserUpdateRequest{Role: &role})
	if err != nil {
		t.Fatalf("AdminUpdate: %v", err)
	}
	if updated.PharmacienResponsableID != nil {
		t.Error("pharmacien_responsable_id doit être effacé pour un rôle non-Preparateur")
	}
}

func TestAdminUpdate_NormalizesLegacyRole(t *testing.T) {
	svc, userRepo := setupUserService()
	pharmacien, _, _ := seedRoster(userRepo)

	role := "admin"
	updated, err := svc.AdminUpdate(context.Background(), pharmacien.UserID, &dto.AdminUserUpdateRequest{Role: &role})
	if err != nil {
		t.Fatalf("AdminUpdate: %v", err)
	}
	if updated.Role != model.RoleAdmin {
		t.Errorf("rôle attendu Admin, obtenu %s", updated.Role)
	}
}

func TestAdminUpdate_RejectsUnknownRole(t *testing.T) {
	svc, userRepo := setupUserService()
	pharmacien, _, _ := seedRoster(userRepo)

	role := "superviseur"
	if _, err := svc.AdminUpdate(context.Background(), pharmacien.UserID, &dto.AdminUserUpdateRequest{Role: &role}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("attendu ErrInvalidRole, obtenu %v", err)
	}
}

func TestAdminUpdate_NotFound(t *testing.T) {
	svc, _ := setupUserService()
	status := "premium"
	if _, err := svc.AdminUpdate(context.Background(), "absent", &dto.AdminUserUpdateRequest{SubscriptionStatus: &status}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("attendu ErrUserNotFound, obtenu %v", err)
	}
}

// ── AdminDelete ──

func TestAdminDelete_NoCascade(t *testing.T) {
	svc, userRepo := setupUserService()
	pharmacien, _, preparateurs := seedRoster(userRepo)

	if err := svc.AdminDelete(context.Background(), pharmacien.UserID); err != nil {
		t.Fatalf("AdminDelete: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), pharmacien.UserID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("attendu ErrUserNotFound, obtenu %v", err)
	}

	// The subordinate survives, with a weak reference now dangling.
	lea, err := svc.GetByID(context.Background(), preparateurs[0].UserID)
	if err != nil {
		t.Fatalf("le préparateur doit survivre à la suppression de son responsable: %v", err)
	}
	if lea.PharmacienResponsableID == nil || *lea.PharmacienResponsableID != pharmacien.UserID {
		t.Error("la référence du préparateur ne doit pas être réécrite")
	}
}

func TestAdminDelete_NotFound(t *testing.T) {
	svc, _ := setupUserService()
	if err := svc.AdminDelete(context.Background(), "absent"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("attendu ErrUserNotFound, obtenu %v", err)
	}
}

// ── ListPreparateurs ──

func TestListPreparateurs_PharmacienSeesOwnOnly(t *testing.T) {
	svc, userRepo := setupUserService()
	pharmacien, _, _ := seedRoster(userRepo)

	got, err := svc.ListPreparateurs(context.Background(), pharmacien.UserID, model.RolePharmacien)
	if err != nil {
		t.Fatalf("ListPreparateurs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("deux préparateurs attendus, obtenu %d", len(got))
	}
	for _, u := range got {
		if u.PharmacienResponsableID == nil || *u.PharmacienResponsableID != pharmacien.UserID {
			t.Errorf("%s n'est pas rattaché au pharmacien demandeur", u.Username)
		}
	}
}

func TestListPreparateurs_AdminSeesAll(t *testing.T) {
	svc, userRepo := setupUserService()
	seedRoster(userRepo)

	got, err := svc.ListPreparateurs(context.Background(), "whoever", model.RoleAdmin)
	if err != nil {
		t.Fatalf("ListPreparateurs: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("trois préparateurs attendus, obtenu %d", len(got))
	}
}

func TestListPreparateurs_Forbidden(t *testing.T) {
	svc, userRepo := setupUserService()
	_, _, preparateurs := seedRoster(userRepo)

	for _, role := range []model.Role{model.RoleFormateur, model.RolePreparateur} {
		if _, err := svc.ListPreparateurs(context.Background(), preparateurs[0].UserID, role); !errors.Is(err, ErrForbidden) {
			t.Errorf("rôle %s: attendu ErrForbidden, obtenu %v", role, err)
		}
	}
}
