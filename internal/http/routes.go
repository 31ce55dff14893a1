package http

import (
	"taskhub/internal/config"
	"taskhub/internal/http/handlers"
	"taskhub/internal/http/middleware"
	"taskhub/internal/repository"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	h := handlers.NewHandler(db, tokens)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Auth endpoints get the tighter window
	auth := r.Group("/auth")
	auth.Use(middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow))
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)

	// Task endpoints: rate limited, bearer auth, owner-scoped paths
	accountRepo := repository.NewAccountRepository(db)
	users := r.Group("/users")
	users.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	users.Use(middleware.RequireAuth(tokens, accountRepo))
	{
		users.GET("/:user_id/tasks", h.ListTasks)
		users.POST("/:user_id/tasks", h.CreateTask)
		users.GET("/:user_id/tasks/:id", h.GetTask)
		users.PUT("/:user_id/tasks/:id", h.UpdateTask)
		users.DELETE("/:user_id/tasks/:id", h.DeleteTask)
		users.PATCH("/:user_id/tasks/:id/complete", h.CompleteTask)
	}
}
