package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/riadhbennourdine/pharmia/config"
	"github.com/riadhbennourdine/pharmia/internal/dto"
	"github.com/riadhbennourdine/pharmia/internal/model"
	"github.com/riadhbennourdine/pharmia/internal/repository"
	"github.com/riadhbennourdine/pharmia/pkg/jwt"
	"github.com/riadhbennourdine/pharmia/pkg/redis"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password"; the distinction is never surfaced.
	ErrInvalidCredentials  = errors.New("identifiant ou mot de passe incorrect")
	ErrEmailTaken          = errors.New("cette adresse email est déjà utilisée")
	ErrUsernameTaken       = errors.New("ce nom d'utilisateur est déjà utilisé")
	ErrInvalidRole         = errors.New("rôle invalide")
	ErrResponsableRequired = errors.New("un Préparateur doit référencer son Pharmacien responsable")
	ErrResponsableInvalid  = errors.New("le responsable référencé n'est pas un Pharmacien")
	ErrWrongPassword       = errors.New("mot de passe actuel incorrect")
	ErrInvalidRefreshToken = errors.New("refresh token invalide ou expiré")
)

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout blacklists the session's JTI, shared by the access and
	// refresh token, until the refresh token's natural expiry. Without
	// Redis this is a no-op: the tokens simply age out.
	Logout(ctx context.Context, claims *jwt.Claims) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates the AuthService.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	// A Preparateur carries a weak reference to a supervising Pharmacien;
	// every other role carries none.
	var responsableID *string
	if role == model.RolePreparateur {
		if req.PharmacienResponsableID == nil || *req.PharmacienResponsableID == "" {
			return nil, ErrResponsableRequired
		}
		responsable, err := s.repo.User.GetByID(ctx, *req.PharmacienResponsableID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrResponsableInvalid
			}
			s.logger.Error("lecture du pharmacien responsable", zap.Error(err))
			return nil, err
		}
		if responsable.Role != model.RolePharmacien {
			return nil, ErrResponsableInvalid
		}
		responsableID = req.PharmacienResponsableID
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hachage du mot de passe", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:                   req.Email,
		Username:                req.Username,
		PasswordHash:            string(hash),
		Role:                    role,
		PharmacienResponsableID: responsableID,
		SkillLevel:              model.SkillDebutant,
		ReadFicheIDs:            model.StringArray{},
		QuizHistory:             model.QuizAttempts{},
		Badges:                  model.StringArray{},
		SubscriptionStatus:      "free",
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// Unique indexes close the pre-check race under concurrent
		// registrations with the same email/username. Re-check to
		// report the column that actually collided.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.repo.User.GetByEmail(ctx, req.Email); lookupErr == nil {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		s.logger.Error("création de l'utilisateur", zap.Error(err))
		return nil, err
	}

	return &dto.RegisterResponse{
		ID:       user.UserID,
		Email:    user.Email,
		Username: user.Username,
		Role:     string(user.Role),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("recherche de l'utilisateur", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.repo.User.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		// Not worth failing the login over.
		s.logger.Warn("mise à jour de last_login", zap.Error(err))
	}
	user.LastLogin = &now

	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefreshToken
	}
	if s.rdb != nil {
		revoked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err == nil && revoked {
			return nil, ErrInvalidRefreshToken
		}
	}

	// Re-read the user so a role change takes effect at refresh time.
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		return nil
	}
	// The pair shares its JTI, so the entry must outlive the refresh
	// token, not just the access token.
	ttl := s.cfg.Auth.RefreshTokenTTL
	if claims.IssuedAt != nil {
		ttl = time.Until(claims.IssuedAt.Time.Add(s.cfg.Auth.RefreshTokenTTL))
	}
	if ttl <= 0 {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, claims.ID, ttl)
}

func (s *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	return s.repo.User.Update(ctx, user)
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, err := s.jwtMgr.GenerateTokenPair(user.UserID, user.Username, string(user.Role))
	if err != nil {
		s.logger.Error("génération des tokens", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         dto.NewUserResponse(user),
	}, nil
}
