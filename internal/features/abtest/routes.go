package abtest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/middleware"
	"github.com/wellnest-app/wellness-api/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the A/B test admin routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)

	authMiddleware := middleware.Auth(cfg)

	group := router.Group("/ab-tests")
	group.Use(authMiddleware)
	{
		group.GET("", func(c *gin.Context) {
			tests, err := repo.ListActive(c.Request.Context(), time.Now())
			if err != nil {
				response.InternalServerError(c, "Failed to fetch tests", "FETCH_FAILED")
				return
			}
			if tests == nil {
				tests = []ABTest{}
			}
			response.Success(c, tests)
		})

		group.POST("", func(c *gin.Context) {
			var req CreateTestRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				response.BadRequest(c, "Invalid request format", "INVALID_JSON")
				return
			}
			if !req.EndsAt.After(req.StartsAt) {
				response.ValidationError(c, "endsAt must be after startsAt", "VALIDATION_FAILED")
				return
			}

			test := &ABTest{
				Name:           req.Name,
				Variants:       req.Variants,
				StartsAt:       req.StartsAt,
				EndsAt:         req.EndsAt,
				TrafficPercent: req.TrafficPercent,
			}
			if err := repo.Create(c.Request.Context(), test); err != nil {
				response.Conflict(c, err.Error(), "CREATE_FAILED")
				return
			}
			response.Created(c, test)
		})

		// My variant assignment for a given test
		group.GET("/:id/assignment", func(c *gin.Context) {
			id, err := primitive.ObjectIDFromHex(c.Param("id"))
			if err != nil {
				response.BadRequest(c, "Invalid test id", "INVALID_ID")
				return
			}

			test, err := repo.GetByID(c.Request.Context(), id)
			if err != nil || test == nil {
				response.NotFound(c, "Test not found", "TEST_NOT_FOUND")
				return
			}

			variant := AssignVariant(test, c.GetString("userID"), time.Now())
			if variant == nil {
				response.Success(c, gin.H{"assigned": false})
				return
			}
			response.Success(c, gin.H{"assigned": true, "variant": variant})
		})

		group.DELETE("/:id", func(c *gin.Context) {
			id, err := primitive.ObjectIDFromHex(c.Param("id"))
			if err != nil {
				response.BadRequest(c, "Invalid test id", "INVALID_ID")
				return
			}
			if err := repo.Delete(c.Request.Context(), id); err != nil {
				response.InternalServerError(c, "Failed to delete test", "DELETE_FAILED")
				return
			}
			response.Success(c, gin.H{"deleted": true})
		})
	}
}
