package recommendations

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wellnest-app/wellness-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get godoc
// @Summary Get personalized recommendations
// @Description Returns a ranked content list for the current user. Anonymous requests get the popularity ranking.
// @Tags recommendations
// @Produce json
// @Param type query string false "Content type filter (article/recipe/quiz/tutorial/video)"
// @Param limit query int false "Number of items (max 50)"
// @Param includeViewed query bool false "Include already-viewed content"
// @Param tags query string false "Comma-separated tag filter"
// @Param abTestId query string false "Active A/B test id"
// @Success 200 {object} response.Body
// @Router /recommendations [get]
func (h *Handler) Get(c *gin.Context) {
	opts := parseRecommendOptions(c.Query)

	userID, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		// Anonymous or malformed identity: serve the popularity ranking.
		items := h.service.GetFallbackRecommendations(c.Request.Context(), opts.ContentType, opts.Limit)
		response.Success(c, gin.H{"items": items, "algorithm": "popularity"})
		return
	}

	items, algorithm := h.service.GetPersonalizedRecommendations(c.Request.Context(), userID, opts)
	if items == nil {
		items = []ScoredContent{}
	}
	response.Success(c, gin.H{"items": items, "algorithm": algorithm})
}

// Fallback godoc
// @Summary Get popularity-ranked content
// @Description Returns active content sorted by view count then recency
// @Tags recommendations
// @Produce json
// @Param type query string false "Content type filter"
// @Param limit query int false "Number of items (max 50)"
// @Success 200 {object} response.Body
// @Router /recommendations/fallback [get]
func (h *Handler) Fallback(c *gin.Context) {
	opts := parseRecommendOptions(c.Query)
	items := h.service.GetFallbackRecommendations(c.Request.Context(), opts.ContentType, opts.Limit)
	response.Success(c, gin.H{"items": items, "algorithm": "popularity"})
}

// Track godoc
// @Summary Track a content interaction
// @Description Records a behavior event and updates interest and content counters
// @Tags recommendations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TrackInteractionRequest true "Interaction to record"
// @Success 201 {object} response.Body
// @Failure 400 {object} response.Body
// @Failure 404 {object} response.Body
// @Router /interactions [post]
func (h *Handler) Track(c *gin.Context) {
	var req TrackInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}
	if err := ValidateTrackInteraction(&req); err != nil {
		response.ValidationError(c, err.Error(), "INVALID_ACTION")
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		response.Unauthorized(c, "Invalid user identity", "INVALID_USER")
		return
	}

	event, err := h.service.TrackInteraction(c.Request.Context(), userID, req)
	if err != nil {
		switch err.Error() {
		case "invalid content id":
			response.BadRequest(c, err.Error(), "INVALID_CONTENT_ID")
		case "content not found":
			response.NotFound(c, err.Error(), "CONTENT_NOT_FOUND")
		default:
			response.InternalServerError(c, "Failed to record interaction", "TRACK_FAILED")
		}
		return
	}

	response.Created(c, event)
}
