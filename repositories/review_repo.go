package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"delish/models"
)

// ReviewRepository defines persistence operations over the review collection.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.Review, error)
}

// MongoReviewRepository is the MongoDB implementation of ReviewRepository.
type MongoReviewRepository struct {
	coll *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{coll: db.Collection("reviews")}
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, review)
	return err
}

func (r *MongoReviewRepository) FindByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"store": storeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
