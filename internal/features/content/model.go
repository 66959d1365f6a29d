package content

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content types
const (
	TypeArticle  = "article"
	TypeRecipe   = "recipe"
	TypeQuiz     = "quiz"
	TypeTutorial = "tutorial"
	TypeVideo    = "video"
)

// ValidTypes lists every accepted content type
var ValidTypes = []string{TypeArticle, TypeRecipe, TypeQuiz, TypeTutorial, TypeVideo}

// ContentItem represents a publishable wellness content document. Tags are
// ordered: the first tag is the item's primary tag and drives the diversity
// grouping downstream.
type ContentItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Summary     string             `bson:"summary" json:"summary"`
	Type        string             `bson:"type" json:"type"`
	Tags        []string           `bson:"tags" json:"tags"`
	TimeSlots   []string           `bson:"timeSlots" json:"timeSlots"` // morning/afternoon/evening/night relevance
	IsActive    bool               `bson:"isActive" json:"isActive"`
	ViewCount   int64              `bson:"viewCount" json:"viewCount"`
	LikeCount   int64              `bson:"likeCount" json:"likeCount"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PrimaryTag returns the first tag, or "" when untagged.
func (c *ContentItem) PrimaryTag() string {
	if len(c.Tags) == 0 {
		return ""
	}
	return c.Tags[0]
}

// HasTag reports whether the item carries the given tag.
func (c *ContentItem) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CreateContentRequest is the admin payload for publishing content
type CreateContentRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Summary     string    `json:"summary" binding:"max=1000"`
	Type        string    `json:"type" binding:"required"`
	Tags        []string  `json:"tags" binding:"required,min=1"`
	TimeSlots   []string  `json:"timeSlots"`
	PublishedAt time.Time `json:"publishedAt"`
}

// UpdateContentRequest is the admin payload for editing content
type UpdateContentRequest struct {
	Title     *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Summary   *string   `json:"summary" binding:"omitempty,max=1000"`
	Tags      *[]string `json:"tags" binding:"omitempty,min=1"`
	TimeSlots *[]string `json:"timeSlots"`
	IsActive  *bool     `json:"isActive"`
}

// ListContentQuery is the browse query
type ListContentQuery struct {
	Type  string `form:"type"`
	Tag   string `form:"tag"`
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=20"`
}
