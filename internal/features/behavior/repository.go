package behavior

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for behavior events
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("interactions")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Per-user history, newest first
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			// Reverse lookup: who touched this content
			Keys: bson.D{
				{Key: "contentId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})

	return &Repository{collection: collection}
}

// Insert appends a new interaction event
func (r *Repository) Insert(ctx context.Context, event *InteractionEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}
	return nil
}

// GetRecentByUser returns the user's most recent events, newest first
func (r *Repository) GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]InteractionEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []InteractionEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetUserContentIDs returns the distinct content ids the user has interacted
// with, most recent first, capped at limit.
func (r *Repository) GetUserContentIDs(ctx context.Context, userID primitive.ObjectID, limit int) ([]primitive.ObjectID, error) {
	events, err := r.GetRecentByUser(ctx, userID, limit*3)
	if err != nil {
		return nil, err
	}

	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, e := range events {
		if seen[e.ContentID] {
			continue
		}
		seen[e.ContentID] = true
		ids = append(ids, e.ContentID)
		if len(ids) >= limit {
			break
		}
	}
	return ids, nil
}

// CountByUser returns the user's total event count
func (r *Repository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID})
}

// GetUsersByContentIDs returns, for each user other than exclude, the set of
// given content ids they have touched. Used by the similarity index as an
// indexed set-intersection primitive.
func (r *Repository) GetUsersByContentIDs(ctx context.Context, contentIDs []primitive.ObjectID, exclude primitive.ObjectID) (map[primitive.ObjectID][]primitive.ObjectID, error) {
	if len(contentIDs) == 0 {
		return map[primitive.ObjectID][]primitive.ObjectID{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"contentId": bson.M{"$in": contentIDs},
			"userId":    bson.M{"$ne": exclude},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$userId",
			"contentIds": bson.M{"$addToSet": "$contentId"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := make(map[primitive.ObjectID][]primitive.ObjectID)
	for cursor.Next(ctx) {
		var row struct {
			UserID     primitive.ObjectID   `bson:"_id"`
			ContentIDs []primitive.ObjectID `bson:"contentIds"`
		}
		if err := cursor.Decode(&row); err == nil {
			result[row.UserID] = row.ContentIDs
		}
	}
	return result, cursor.Err()
}

// GetPositiveEventsByUsers returns like/save/share events for the given users,
// newest first, capped at limit.
func (r *Repository) GetPositiveEventsByUsers(ctx context.Context, userIDs []primitive.ObjectID, limit int) ([]InteractionEvent, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"userId": bson.M{"$in": userIDs},
		"action": bson.M{"$in": []string{ActionLike, ActionSave, ActionShare}},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []InteractionEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByUserSince returns the user's events after the given time, oldest first.
// Feeds the orchestrator's algorithm-performance analysis.
func (r *Repository) GetByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]InteractionEvent, error) {
	filter := bson.M{
		"userId":    userID,
		"createdAt": bson.M{"$gte": since},
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []InteractionEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
