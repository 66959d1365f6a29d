package profile

import (
	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the profile routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	authMiddleware := middleware.Auth(cfg)

	group := router.Group("/profile")
	{
		group.GET("/me", authMiddleware, handler.GetMyProfile)
		group.PUT("/me", authMiddleware, handler.UpdateMyProfile)
	}
}
