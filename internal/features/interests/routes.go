package interests

import (
	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/middleware"
	"github.com/wellnest-app/wellness-api/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the interests routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)

	authMiddleware := middleware.Auth(cfg)

	group := router.Group("/interests")
	{
		// GetMyInterests returns the caller's learned interest tags
		group.GET("/me", authMiddleware, func(c *gin.Context) {
			userID, err := primitive.ObjectIDFromHex(c.GetString("userID"))
			if err != nil {
				response.Unauthorized(c, "Invalid user", "INVALID_USER")
				return
			}

			scores, err := repo.GetScores(c.Request.Context(), userID)
			if err != nil {
				response.InternalServerError(c, "Failed to fetch interests", "FETCH_FAILED")
				return
			}
			if scores == nil {
				scores = []UserInterestScore{}
			}
			response.Success(c, scores)
		})
	}
}
