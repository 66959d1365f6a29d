package content

import (
	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the content routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	authMiddleware := middleware.Auth(cfg)

	group := router.Group("/content")
	{
		group.GET("", handler.ListContent)
		group.GET("/:id", handler.GetContent)

		// Admin paths
		group.POST("", authMiddleware, handler.CreateContent)
		group.PATCH("/:id", authMiddleware, handler.UpdateContent)
	}
}
