package recommendations

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/features/abtest"
	"github.com/wellnest-app/wellness-api/internal/features/behavior"
	"github.com/wellnest-app/wellness-api/internal/features/content"
	"github.com/wellnest-app/wellness-api/internal/features/interests"
	"github.com/wellnest-app/wellness-api/internal/features/profile"
	"github.com/wellnest-app/wellness-api/internal/features/promotions"
	"github.com/wellnest-app/wellness-api/internal/middleware"
	"github.com/wellnest-app/wellness-api/internal/pkg/cache"
	"github.com/wellnest-app/wellness-api/internal/pkg/ratelimit"
)

// RegisterRoutes wires the engine and registers the recommendation routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, c *cache.Cache) {
	behaviorRepo := behavior.NewRepository(db)

	index := NewBehaviorIndex(behaviorRepo, cfg.Engine)
	collab := NewCollaborativeScorer(index, behaviorRepo, cfg.Engine)

	service := NewService(
		content.NewRepository(db),
		behaviorRepo,
		profile.NewRepository(db),
		interests.NewRepository(db),
		promotions.NewRepository(db),
		abtest.NewRepository(db),
		NewRepository(db),
		collab,
		c,
		cfg.Engine,
	)
	handler := NewHandler(service)

	group := router.Group("/recommendations")
	group.Use(ratelimit.Middleware(60, time.Minute))
	{
		group.GET("", middleware.OptionalAuth(cfg), handler.Get)
		group.GET("/fallback", handler.Fallback)
	}

	router.POST("/interactions", middleware.Auth(cfg), handler.Track)
}
