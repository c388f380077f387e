package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/riadhbennourdine/pharmia/internal/model"
	"github.com/riadhbennourdine/pharmia/pkg/jwt"
	"github.com/riadhbennourdine/pharmia/pkg/response"
)

// MustGetUserID extracts user_id from the Gin context. On failure it writes
// a 401 and returns false; callers should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "non authentifié")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "non authentifié")
		return "", false
	}
	return s, true
}

// MustGetRole extracts the caller's role from the Gin context.
func MustGetRole(c *gin.Context) (model.Role, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "non authentifié")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "non authentifié")
		return "", false
	}
	role, err := model.ParseRole(s)
	if err != nil {
		response.Unauthorized(c, 10002, "non authentifié")
		return "", false
	}
	return role, true
}

// MustGetClaims extracts the full token claims injected by the auth
// middleware.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "non authentifié")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "non authentifié")
		return nil, false
	}
	return claims, true
}
