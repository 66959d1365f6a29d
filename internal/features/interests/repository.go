package interests

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for user interest scores
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("interest_scores")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// One row per (user, tag)
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "tag", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			// Top-tags query
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "count", Value: -1},
			},
		},
	})

	return &Repository{collection: collection}
}

// IncrementTags bumps the interest count for each tag. Racing increments are
// harmless; the counters only need to be roughly right.
func (r *Repository) IncrementTags(ctx context.Context, userID primitive.ObjectID, tags []string) error {
	now := time.Now()
	for _, tag := range tags {
		filter := bson.M{"userId": userID, "tag": tag}
		update := bson.M{
			"$inc": bson.M{"count": 1},
			"$set": bson.M{"lastInteractedAt": now},
		}
		if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return err
		}
	}
	return nil
}

// GetTopTags returns the user's highest-count interest tags
func (r *Repository) GetTopTags(ctx context.Context, userID primitive.ObjectID, limit int) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "count", Value: -1},
			{Key: "lastInteractedAt", Value: -1},
		}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []UserInterestScore
	if err = cursor.All(ctx, &scores); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(scores))
	for _, s := range scores {
		tags = append(tags, s.Tag)
	}
	return tags, nil
}

// GetScores returns the user's full interest table, highest first
func (r *Repository) GetScores(ctx context.Context, userID primitive.ObjectID) ([]UserInterestScore, error) {
	opts := options.Find().SetSort(bson.D{{Key: "count", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []UserInterestScore
	if err = cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}
