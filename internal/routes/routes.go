package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/features/abtest"
	"github.com/wellnest-app/wellness-api/internal/features/auth"
	"github.com/wellnest-app/wellness-api/internal/features/behavior"
	"github.com/wellnest-app/wellness-api/internal/features/content"
	"github.com/wellnest-app/wellness-api/internal/features/interests"
	"github.com/wellnest-app/wellness-api/internal/features/profile"
	"github.com/wellnest-app/wellness-api/internal/features/promotions"
	"github.com/wellnest-app/wellness-api/internal/features/recommendations"
	"github.com/wellnest-app/wellness-api/internal/pkg/cache"
)

// SetupRoutes registers every feature under /api/v1
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, c *cache.Cache) {
	api := router.Group("/api/v1")

	auth.RegisterRoutes(api, db, cfg)
	content.RegisterRoutes(api, db, cfg)
	behavior.RegisterRoutes(api, db, cfg)
	profile.RegisterRoutes(api, db, cfg)
	interests.RegisterRoutes(api, db, cfg)
	promotions.RegisterRoutes(api, db, cfg)
	abtest.RegisterRoutes(api, db, cfg)
	recommendations.RegisterRoutes(api, db, cfg, c)
}
