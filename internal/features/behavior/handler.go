package behavior

import (
	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles behavior HTTP requests
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetMyHistory godoc
// @Summary Get my recent interaction events
// @Tags behavior
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max events (default 50, max 500)"
// @Success 200 {object} response.Body
// @Router /interactions/me [get]
func (h *Handler) GetMyHistory(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		response.Unauthorized(c, "Invalid user", "INVALID_USER")
		return
	}

	limit := 50
	if v, ok := c.GetQuery("limit"); ok {
		if n, err := parsePositiveInt(v); err == nil && n <= 500 {
			limit = n
		}
	}

	events, err := h.repo.GetRecentByUser(c.Request.Context(), userID, limit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch history", "FETCH_FAILED")
		return
	}
	if events == nil {
		events = []InteractionEvent{}
	}

	response.Success(c, events)
}
