package abtest

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for A/B tests
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("ab_tests")

	_, _ = collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &Repository{collection: collection}
}

// GetByID returns a test, (nil, nil) when missing
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*ABTest, error) {
	var test ABTest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&test)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

// ListActive returns tests covering the given time
func (r *Repository) ListActive(ctx context.Context, now time.Time) ([]ABTest, error) {
	filter := bson.M{
		"startsAt": bson.M{"$lte": now},
		"endsAt":   bson.M{"$gte": now},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tests []ABTest
	if err = cursor.All(ctx, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// Create inserts a new test
func (r *Repository) Create(ctx context.Context, test *ABTest) error {
	test.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, test)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("a test with this name already exists")
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		test.ID = oid
	}
	return nil
}

// Delete removes a test
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
