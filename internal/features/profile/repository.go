package profile

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for user health profiles
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("profiles")

	_, _ = collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &Repository{collection: collection}
}

// GetByUserID returns the user's profile, (nil, nil) when absent
func (r *Repository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*UserProfile, error) {
	var p UserProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Upsert applies a partial update, creating the profile on first write
func (r *Repository) Upsert(ctx context.Context, userID primitive.ObjectID, set bson.M) (*UserProfile, error) {
	now := time.Now()
	set["updatedAt"] = now

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"userId":    userID,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var p UserProfile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
