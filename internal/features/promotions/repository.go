package promotions

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for seasonal promotions
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("promotions")

	_, _ = collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{
			{Key: "startsAt", Value: 1},
			{Key: "endsAt", Value: 1},
			{Key: "priority", Value: -1},
		},
	})

	return &Repository{collection: collection}
}

// ListActive returns promotions whose date range covers now, highest
// priority first.
func (r *Repository) ListActive(ctx context.Context, now time.Time) ([]SeasonalPromotion, error) {
	filter := bson.M{
		"startsAt": bson.M{"$lte": now},
		"endsAt":   bson.M{"$gte": now},
	}

	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var promos []SeasonalPromotion
	if err = cursor.All(ctx, &promos); err != nil {
		return nil, err
	}
	return promos, nil
}

// GetByID returns a promotion, (nil, nil) when missing
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*SeasonalPromotion, error) {
	var p SeasonalPromotion
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// List returns all promotions, newest first
func (r *Repository) List(ctx context.Context, limit int) ([]SeasonalPromotion, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var promos []SeasonalPromotion
	if err = cursor.All(ctx, &promos); err != nil {
		return nil, err
	}
	return promos, nil
}

// Create inserts a new promotion
func (r *Repository) Create(ctx context.Context, promo *SeasonalPromotion) error {
	now := time.Now()
	promo.CreatedAt = now
	promo.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, promo)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		promo.ID = oid
	}
	return nil
}

// Delete removes a promotion; deleting a missing promotion is not an error
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
