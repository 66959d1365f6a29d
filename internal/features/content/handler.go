package content

import (
	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/pkg/pagination"
	"github.com/wellnest-app/wellness-api/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles content HTTP requests
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListContent godoc
// @Summary List active content
// @Description Browse active content, optionally filtered by type and tag
// @Tags content
// @Produce json
// @Param type query string false "Content type (article/recipe/quiz/tutorial/video)"
// @Param tag query string false "Tag filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Body
// @Router /content [get]
func (h *Handler) ListContent(c *gin.Context) {
	var query ListContentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}
	if err := ValidateListQuery(&query); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_QUERY")
		return
	}

	page := pagination.New(query.Page, query.Limit, 0)
	items, total, err := h.repo.List(c.Request.Context(), query.Type, query.Tag, page.Offset, page.Limit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch content", "FETCH_FAILED")
		return
	}
	if items == nil {
		items = []ContentItem{}
	}

	response.Paginated(c, items, total, page.Limit, page.Page)
}

// GetContent godoc
// @Summary Get content by id
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} response.Body
// @Router /content/{id} [get]
func (h *Handler) GetContent(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid content id", "INVALID_ID")
		return
	}

	item, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch content", "FETCH_FAILED")
		return
	}
	if item == nil || !item.IsActive {
		response.NotFound(c, "Content not found", "CONTENT_NOT_FOUND")
		return
	}

	response.Success(c, item)
}

// CreateContent godoc
// @Summary Publish a content item
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateContentRequest true "Content"
// @Success 201 {object} response.Body
// @Router /content [post]
func (h *Handler) CreateContent(c *gin.Context) {
	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}
	if err := ValidateCreateRequest(&req); err != nil {
		response.ValidationError(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	item := &ContentItem{
		Title:       req.Title,
		Summary:     req.Summary,
		Type:        req.Type,
		Tags:        req.Tags,
		TimeSlots:   req.TimeSlots,
		IsActive:    true,
		PublishedAt: req.PublishedAt,
	}

	if err := h.repo.Create(c.Request.Context(), item); err != nil {
		response.InternalServerError(c, "Failed to create content", "CREATE_FAILED")
		return
	}

	response.Created(c, item)
}

// UpdateContent godoc
// @Summary Update a content item
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Content ID"
// @Param request body UpdateContentRequest true "Fields to update"
// @Success 200 {object} response.Body
// @Router /content/{id} [patch]
func (h *Handler) UpdateContent(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid content id", "INVALID_ID")
		return
	}

	var req UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Summary != nil {
		set["summary"] = *req.Summary
	}
	if req.Tags != nil {
		tags := normalizeTags(*req.Tags)
		if len(tags) == 0 {
			response.ValidationError(c, "at least one tag is required", "VALIDATION_FAILED")
			return
		}
		set["tags"] = tags
	}
	if req.TimeSlots != nil {
		set["timeSlots"] = *req.TimeSlots
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if len(set) == 0 {
		response.BadRequest(c, "No fields to update", "EMPTY_UPDATE")
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, set); err != nil {
		response.InternalServerError(c, "Failed to update content", "UPDATE_FAILED")
		return
	}

	item, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil || item == nil {
		response.NotFound(c, "Content not found", "CONTENT_NOT_FOUND")
		return
	}

	response.Success(c, item)
}
