package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/riadhbennourdine/pharmia/internal/model"
	"github.com/riadhbennourdine/pharmia/internal/policy"
	"github.com/riadhbennourdine/pharmia/pkg/jwt"
	"github.com/riadhbennourdine/pharmia/pkg/redis"
	"github.com/riadhbennourdine/pharmia/pkg/response"
)

// JWTAuth extracts and validates the access token from
// Authorization: Bearer <token>. A nil rdb skips the blacklist check.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "en-tête d'authentification manquant")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "en-tête d'authentification invalide")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalide ou expiré")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "type de token invalide")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "token révoqué")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequirePermission gates a route on the authorization table. The role comes
// from the JWT claims injected by JWTAuth; an unknown role gets 403, never 500.
func RequirePermission(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "non authentifié")
			c.Abort()
			return
		}

		role, err := model.ParseRole(raw.(string))
		if err != nil || !policy.Allow(role, action) {
			response.Forbidden(c, 10003, "accès refusé")
			c.Abort()
			return
		}

		c.Next()
	}
}
