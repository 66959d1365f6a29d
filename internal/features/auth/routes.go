package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/middleware"
)

// RegisterRoutes registers the auth routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo, cfg)

	group := router.Group("/auth")
	{
		group.POST("/register", handler.Register)
		group.POST("/login", handler.Login)
		group.GET("/me", middleware.Auth(cfg), handler.Me)
	}
}
