package profile

import (
	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles profile HTTP requests
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetMyProfile godoc
// @Summary Get my health profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Body
// @Router /profile/me [get]
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		response.Unauthorized(c, "Invalid user", "INVALID_USER")
		return
	}

	p, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch profile", "FETCH_FAILED")
		return
	}
	if p == nil {
		response.NotFound(c, "Profile not set up yet", "PROFILE_NOT_FOUND")
		return
	}

	response.Success(c, p)
}

// UpdateMyProfile godoc
// @Summary Update my health profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} response.Body
// @Router /profile/me [put]
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		response.Unauthorized(c, "Invalid user", "INVALID_USER")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	set := bson.M{}
	if req.Constitution != nil {
		set["constitution"] = *req.Constitution
	}
	if req.HealthGoals != nil {
		set["healthGoals"] = *req.HealthGoals
	}
	if req.ChronicConditions != nil {
		set["chronicConditions"] = *req.ChronicConditions
	}
	if req.PreferenceTags != nil {
		set["preferenceTags"] = *req.PreferenceTags
	}
	if req.Region != nil {
		set["region"] = *req.Region
	}
	if len(set) == 0 {
		response.BadRequest(c, "No fields to update", "EMPTY_UPDATE")
		return
	}

	p, err := h.repo.Upsert(c.Request.Context(), userID, set)
	if err != nil {
		response.InternalServerError(c, "Failed to update profile", "UPDATE_FAILED")
		return
	}

	response.Success(c, p)
}
