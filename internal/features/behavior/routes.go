package behavior

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the behavior routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	authMiddleware := middleware.Auth(cfg)

	group := router.Group("/interactions")
	{
		group.GET("/me", authMiddleware, handler.GetMyHistory)
	}
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}
