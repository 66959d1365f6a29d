package promotions

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles promotion admin requests
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListPromotions godoc
// @Summary List promotions
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Body
// @Router /promotions [get]
func (h *Handler) ListPromotions(c *gin.Context) {
	promos, err := h.repo.List(c.Request.Context(), 100)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch promotions", "FETCH_FAILED")
		return
	}
	if promos == nil {
		promos = []SeasonalPromotion{}
	}
	response.Success(c, promos)
}

// CreatePromotion godoc
// @Summary Create a promotion
// @Tags promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePromotionRequest true "Promotion"
// @Success 201 {object} response.Body
// @Router /promotions [post]
func (h *Handler) CreatePromotion(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		response.ValidationError(c, "endsAt must be after startsAt", "VALIDATION_FAILED")
		return
	}
	if req.BoostFactor < 0 {
		response.ValidationError(c, "boostFactor must not be negative", "VALIDATION_FAILED")
		return
	}

	var contentIDs []primitive.ObjectID
	for _, hex := range req.PromotedContentIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			response.ValidationError(c, "invalid content id: "+hex, "VALIDATION_FAILED")
			return
		}
		contentIDs = append(contentIDs, id)
	}

	promo := &SeasonalPromotion{
		Name:               req.Name,
		StartsAt:           req.StartsAt,
		EndsAt:             req.EndsAt,
		Priority:           req.Priority,
		PromotedContentIDs: contentIDs,
		BoostedTags:        req.BoostedTags,
		BoostedTypes:       req.BoostedTypes,
		BoostFactor:        req.BoostFactor,
		TargetSegments:     req.TargetSegments,
		TargetRegions:      req.TargetRegions,
	}

	if err := h.repo.Create(c.Request.Context(), promo); err != nil {
		response.InternalServerError(c, "Failed to create promotion", "CREATE_FAILED")
		return
	}

	response.Created(c, promo)
}

// DeletePromotion godoc
// @Summary Delete a promotion
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Body
// @Router /promotions/{id} [delete]
func (h *Handler) DeletePromotion(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid promotion id", "INVALID_ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.InternalServerError(c, "Failed to delete promotion", "DELETE_FAILED")
		return
	}

	response.Success(c, gin.H{"deletedAt": time.Now()})
}
