package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/riadhbennourdine/pharmia/config"
	"github.com/riadhbennourdine/pharmia/internal/api/handler"
	"github.com/riadhbennourdine/pharmia/internal/api/middleware"
	"github.com/riadhbennourdine/pharmia/internal/policy"
	"github.com/riadhbennourdine/pharmia/pkg/jwt"
	"github.com/riadhbennourdine/pharmia/pkg/redis"
)

// Setup builds the Gin engine with the full route tree.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(2 << 20))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API ──
	api := r.Group("/api")
	{
		// Public routes. Login and register are rate-limited per IP.
		api.POST("/register", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Register)
		api.POST("/login", middleware.RateLimit(rdb, 20, time.Minute), h.Auth.Login)
		api.POST("/refresh", h.Auth.Refresh)
		api.GET("/data", h.MemoFiche.GetCatalog)
		api.GET("/badges", h.MemoFiche.GetBadgeCatalog)
		api.GET("/memofiches/:id", h.MemoFiche.GetMemoFiche)

		// Authenticated routes.
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/logout", h.Auth.Logout)
			authorized.GET("/me", h.Auth.Me)
			authorized.PUT("/password", h.Auth.ChangePassword)

			// Learner space.
			authorized.GET("/learner-space", h.Learner.GetLearnerSpace)
			authorized.POST("/users/me/read-fiches", h.Learner.RecordFicheRead)
			authorized.POST("/users/me/quiz-history", h.Learner.RecordQuizResult)

			// AI coach. Upstream calls are expensive; keep a tight limit.
			coach := authorized.Group("/ai-coach")
			coach.Use(middleware.RateLimit(rdb, 10, time.Minute))
			{
				coach.POST("/suggest-challenge", h.Coach.SuggestChallenge)
				coach.POST("/find-by-objective", h.Coach.FindByObjective)
			}

			// Content mutations. The service re-checks the policy; the
			// middleware short-circuits the obvious denials.
			authorized.POST("/memofiches", middleware.RequirePermission(policy.ActionMemoFicheCreate), h.MemoFiche.CreateMemoFiche)
			authorized.PUT("/memofiches/:id", middleware.RequirePermission(policy.ActionMemoFicheUpdate), h.MemoFiche.UpdateMemoFiche)
			authorized.DELETE("/memofiches/:id", middleware.RequirePermission(policy.ActionMemoFicheDelete), h.MemoFiche.DeleteMemoFiche)

			// Admin surface.
			admin := authorized.Group("/admin")
			admin.Use(middleware.RequirePermission(policy.ActionUserManage))
			{
				admin.GET("/users", h.User.ListUsers)
				admin.GET("/users/:id", h.User.GetUser)
				admin.PUT("/users/:id", h.User.UpdateUser)
				admin.DELETE("/users/:id", h.User.DeleteUser)
				admin.GET("/export/users", h.Export.ExportUsers)
			}

			// Pharmacien surface (also reachable by Admin).
			authorized.GET("/pharmacien/preparateurs", middleware.RequirePermission(policy.ActionPreparateurStats), h.User.ListPreparateurs)
		}
	}

	return r
}
