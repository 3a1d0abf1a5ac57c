package repositories

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"delish/models"
)

const (
	// minReviewsForTop is the minimum-sample-size filter for the
	// top-stores view. Stores with fewer reviews are excluded.
	minReviewsForTop = 2

	topStoresLimit = 10

	// searchLimit caps text-search results.
	searchLimit = 5

	// nearMaxDistanceMeters is the proximity-search radius (10 km).
	nearMaxDistanceMeters = 10000

	nearLimit = 10
)

// MongoStoreRepository is the MongoDB implementation of StoreRepository.
type MongoStoreRepository struct {
	coll *mongo.Collection
}

func NewMongoStoreRepository(db *mongo.Database) *MongoStoreRepository {
	return &MongoStoreRepository{coll: db.Collection("stores")}
}

func (r *MongoStoreRepository) Create(ctx context.Context, store *models.Store) error {
	if store.ID.IsZero() {
		store.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, store)
	return err
}

func (r *MongoStoreRepository) Update(ctx context.Context, store *models.Store) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": store.ID}, store)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoStoreRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error) {
	var store models.Store
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *MongoStoreRepository) FindBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *MongoStoreRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Store, error) {
	if len(ids) == 0 {
		return []models.Store{}, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return decodeStores(ctx, cursor)
}

func (r *MongoStoreRepository) FindPage(ctx context.Context, page, limit int) ([]models.Store, error) {
	skip := int64((page - 1) * limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeStores(ctx, cursor)
}

func (r *MongoStoreRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *MongoStoreRepository) CountSlugLike(ctx context.Context, base string) (int64, error) {
	pattern := fmt.Sprintf(`^(%s)((-[0-9]*)?)$`, regexp.QuoteMeta(base))
	return r.coll.CountDocuments(ctx, bson.M{
		"slug": primitive.Regex{Pattern: pattern, Options: "i"},
	})
}

func (r *MongoStoreRepository) FindByTag(ctx context.Context, tag string) ([]models.Store, error) {
	var tagQuery interface{} = tag
	if tag == "" {
		tagQuery = bson.M{"$exists": true}
	}
	cursor, err := r.coll.Find(ctx, bson.M{"tags": tagQuery})
	if err != nil {
		return nil, err
	}
	return decodeStores(ctx, cursor)
}

func tagCountsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tags"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
}

func (r *MongoStoreRepository) TagCounts(ctx context.Context) ([]models.TagCount, error) {
	cursor, err := r.coll.Aggregate(ctx, tagCountsPipeline())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tags := []models.TagCount{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func topStoresPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		// Join each store with the reviews referencing it.
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "reviews"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "store"},
			{Key: "as", Value: "reviews"},
		}}},
		// Keep only stores with at least minReviewsForTop reviews:
		// element N-1 existing means N or more entries.
		{{Key: "$match", Value: bson.D{
			{Key: fmt.Sprintf("reviews.%d", minReviewsForTop-1), Value: bson.D{{Key: "$exists", Value: true}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "photo", Value: 1},
			{Key: "name", Value: 1},
			{Key: "slug", Value: 1},
			{Key: "reviews", Value: 1},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$reviews.rating"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "averageRating", Value: -1}}}},
		{{Key: "$limit", Value: topStoresLimit}},
	}
}

func (r *MongoStoreRepository) TopStores(ctx context.Context) ([]models.TopStore, error) {
	cursor, err := r.coll.Aggregate(ctx, topStoresPipeline())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stores := []models.TopStore{}
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *MongoStoreRepository) Search(ctx context.Context, query string) ([]models.Store, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(searchLimit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return decodeStores(ctx, cursor)
}

func (r *MongoStoreRepository) Near(ctx context.Context, lng, lat float64) ([]models.Store, error) {
	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lng, lat},
				},
				"$maxDistance": nearMaxDistanceMeters,
			},
		},
	}
	opts := options.Find().
		SetLimit(nearLimit).
		SetProjection(bson.M{
			"slug":        1,
			"name":        1,
			"description": 1,
			"location":    1,
			"photo":       1,
		})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return decodeStores(ctx, cursor)
}

func decodeStores(ctx context.Context, cursor *mongo.Cursor) ([]models.Store, error) {
	defer cursor.Close(ctx)
	stores := []models.Store{}
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}
