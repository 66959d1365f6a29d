package content

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for content items
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("content")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Candidate queries: active content by type, freshest first
			Keys: bson.D{
				{Key: "isActive", Value: 1},
				{Key: "type", Value: 1},
				{Key: "publishedAt", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "tags", Value: 1}},
		},
		{
			// Popularity fallback sort
			Keys: bson.D{
				{Key: "isActive", Value: 1},
				{Key: "viewCount", Value: -1},
				{Key: "publishedAt", Value: -1},
			},
		},
	})

	return &Repository{collection: collection}
}

// CandidateQuery narrows the candidate set before scoring
type CandidateQuery struct {
	Type       string
	Tags       []string
	ExcludeIDs []primitive.ObjectID
	Limit      int
}

// GetByID returns a single content item, (nil, nil) when missing
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*ContentItem, error) {
	var item ContentItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByIDs returns the content items matching the given ids, active or not.
// Missing ids are silently absent from the result.
func (r *Repository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]ContentItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []ContentItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindCandidates returns active content matching the query constraints
func (r *Repository) FindCandidates(ctx context.Context, query CandidateQuery) ([]ContentItem, error) {
	filter := bson.M{"isActive": true}

	if query.Type != "" && query.Type != "all" {
		filter["type"] = query.Type
	}
	if len(query.Tags) > 0 {
		filter["tags"] = bson.M{"$in": query.Tags}
	}
	if len(query.ExcludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": query.ExcludeIDs}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	if query.Limit > 0 {
		opts.SetLimit(int64(query.Limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []ContentItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetPopular returns active content sorted by view count, then recency.
// This is the engine's popularity fallback ranking.
func (r *Repository) GetPopular(ctx context.Context, contentType string, limit int) ([]ContentItem, error) {
	filter := bson.M{"isActive": true}
	if contentType != "" && contentType != "all" {
		filter["type"] = contentType
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "viewCount", Value: -1},
			{Key: "publishedAt", Value: -1},
		}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []ContentItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// List returns content for browsing with pagination
func (r *Repository) List(ctx context.Context, contentType, tag string, offset, limit int) ([]ContentItem, int64, error) {
	filter := bson.M{"isActive": true}
	if contentType != "" && contentType != "all" {
		filter["type"] = contentType
	}
	if tag != "" {
		filter["tags"] = tag
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []ContentItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create inserts a new content item
func (r *Repository) Create(ctx context.Context, item *ContentItem) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.PublishedAt.IsZero() {
		item.PublishedAt = now
	}

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

// Update applies a partial update to a content item
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// IncrementCounter bumps a counter field (viewCount / likeCount). Racy
// last-write behavior on counts is acceptable here.
func (r *Repository) IncrementCounter(ctx context.Context, id primitive.ObjectID, field string, delta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}})
	return err
}
