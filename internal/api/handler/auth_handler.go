package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riadhbennourdine/pharmia/internal/dto"
	"github.com/riadhbennourdine/pharmia/internal/policy"
	"github.com/riadhbennourdine/pharmia/internal/service"
	"github.com/riadhbennourdine/pharmia/pkg/response"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	authSvc service.AuthService
	userSvc service.UserService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, userSvc: userSvc}
}

// Register creates an account.
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.Conflict(c, 11002, "cet email est déjà utilisé")
		case errors.Is(err, service.ErrUsernameTaken):
			response.Conflict(c, 11003, "ce nom d'utilisateur est déjà utilisé")
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, 11004, "rôle inconnu")
		case errors.Is(err, service.ErrResponsableRequired):
			response.BadRequest(c, 11005, "un préparateur doit être rattaché à un pharmacien")
		case errors.Is(err, service.ErrResponsableInvalid):
			response.BadRequest(c, 11006, "le responsable indiqué n'est pas un pharmacien")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Login authenticates by email or username.
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "identifiants invalides")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Refresh exchanges a refresh token for a new pair.
// POST /api/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, 11007, "token de rafraîchissement invalide")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout revokes the presented access token.
// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ChangePassword updates the caller's password.
// PUT /api/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	err := h.authSvc.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.BadRequest(c, 11008, "ancien mot de passe incorrect")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "utilisateur introuvable")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// Me returns the authenticated user with its capability flags.
// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "utilisateur introuvable")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, dto.MeResponse{
		User:         dto.NewUserResponse(user),
		Capabilities: policy.CapabilitiesFor(role),
	})
}
