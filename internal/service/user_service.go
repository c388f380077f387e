package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/riadhbennourdine/pharmia/internal/dto"
	"github.com/riadhbennourdine/pharmia/internal/model"
	"github.com/riadhbennourdine/pharmia/internal/policy"
	"github.com/riadhbennourdine/pharmia/internal/repository"
)

// UserService covers the admin user-management surface and the Pharmacien
// subordinate view.
type UserService interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// AdminUpdate applies a partial update, re-enforcing the
	// Preparateur/responsable invariant after any role change.
	AdminUpdate(ctx context.Context, id string, req *dto.AdminUserUpdateRequest) (*model.User, error)
	// AdminDelete hard-deletes the user. No cascade: subordinates keep a
	// dangling weak reference, which lookups treat as absent.
	AdminDelete(ctx context.Context, id string) error
	// ListPreparateurs returns the Preparateur roster visible to the
	// actor: all of them for Admin, own subordinates for a Pharmacien.
	ListPreparateurs(ctx context.Context, actorID string, actorRole model.Role) ([]model.User, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates the UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.User.List(ctx)
}

func (s *userService) AdminUpdate(ctx context.Context, id string, req *dto.AdminUserUpdateRequest) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}
	if req.SubscriptionStatus != nil {
		user.SubscriptionStatus = *req.SubscriptionStatus
	}
	if req.Consigne != nil {
		user.Consigne = *req.Consigne
	}
	if req.PharmacienResponsableID != nil {
		user.PharmacienResponsableID = req.PharmacienResponsableID
	}

	// pharmacien_responsable_id is present iff the role is Preparateur.
	if user.Role == model.RolePreparateur {
		if user.PharmacienResponsableID == nil || *user.PharmacienResponsableID == "" {
			return nil, ErrResponsableRequired
		}
		responsable, err := s.repo.User.GetByID(ctx, *user.PharmacienResponsableID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrResponsableInvalid
			}
			return nil, err
		}
		if responsable.Role != model.RolePharmacien {
			return nil, ErrResponsableInvalid
		}
	} else {
		user.PharmacienResponsableID = nil
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("mise à jour de l'utilisateur", zap.Error(err), zap.String("user_id", id))
		return nil, err
	}
	return user, nil
}

func (s *userService) AdminDelete(ctx context.Context, id string) error {
	if err := s.repo.User.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("suppression de l'utilisateur", zap.Error(err), zap.String("user_id", id))
		return err
	}
	return nil
}

func (s *userService) ListPreparateurs(ctx context.Context, actorID string, actorRole model.Role) ([]model.User, error) {
	if !policy.Allow(actorRole, policy.ActionPreparateurStats) {
		return nil, ErrForbidden
	}

	if actorRole == model.RoleAdmin {
		all, err := s.repo.User.List(ctx)
		if err != nil {
			return nil, err
		}
		preparateurs := make([]model.User, 0)
		for _, u := range all {
			if u.Role == model.RolePreparateur {
				preparateurs = append(preparateurs, u)
			}
		}
		return preparateurs, nil
	}

	// Pharmacien: own subordinates only.
	return s.repo.User.ListByResponsable(ctx, actorID)
}
