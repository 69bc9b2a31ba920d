package http

import (
	"taskflow/internal/config"
	"taskflow/internal/http/handlers"
	"taskflow/internal/http/middleware"
	"taskflow/internal/repository"
	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	users := repository.NewUserRepository(db)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(users, service.NewBcryptHasher(), tokens)

	h := handlers.NewHandler(db, authService)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	requireAuth := middleware.Auth(authService)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh-token", h.RefreshToken)
		auth.GET("/me", requireAuth, h.Me)
	}

	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.POST("/", h.CreateTask)
		tasks.GET("/", h.ListTasks)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}
}
