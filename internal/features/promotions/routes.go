package promotions

import (
	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the promotion admin routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	authMiddleware := middleware.Auth(cfg)

	group := router.Group("/promotions")
	group.Use(authMiddleware)
	{
		group.GET("", handler.ListPromotions)
		group.POST("", handler.CreatePromotion)
		group.DELETE("/:id", handler.DeletePromotion)
	}
}
