package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/riadhbennourdine/pharmia/internal/dto"
	"github.com/riadhbennourdine/pharmia/internal/service"
	"github.com/riadhbennourdine/pharmia/pkg/response"
)

// UserHandler serves the admin user-management surface and the Pharmacien
// subordinate view.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates the UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers lists every account.
// GET /api/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	response.OK(c, out)
}

// GetUser returns one account.
// GET /api/admin/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "utilisateur introuvable")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, dto.NewUserResponse(user))
}

// UpdateUser patches an account.
// PUT /api/admin/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.AdminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	user, err := h.userSvc.AdminUpdate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "utilisateur introuvable")
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
	response.OK(c, dto.NewUserResponse(user))
}

// DeleteUser removes an account.
// DELETE /api/admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userSvc.AdminDelete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "utilisateur introuvable")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ListPreparateurs returns the Preparateur roster visible to the caller.
// GET /api/pharmacien/preparateurs
func (h *UserHandler) ListPreparateurs(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	users, err := h.userSvc.ListPreparateurs(c.Request.Context(), userID, role)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.Forbidden(c, 10003, "accès refusé")
			return
		}
		response.InternalError(c)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	response.OK(c, out)
}
