package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"delish/models"
)

// StoreRepository defines persistence operations over the store collection.
type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error)
	FindBySlug(ctx context.Context, slug string) (*models.Store, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Store, error)

	// FindPage returns one page sorted by creation time descending.
	FindPage(ctx context.Context, page, limit int) ([]models.Store, error)
	Count(ctx context.Context) (int64, error)

	// CountSlugLike counts slugs matching base or base-<n>,
	// case-insensitive. Used to pick a collision suffix.
	CountSlugLike(ctx context.Context, base string) (int64, error)

	// FindByTag returns stores carrying the tag; an empty tag matches
	// any store that has at least one tag.
	FindByTag(ctx context.Context, tag string) ([]models.Store, error)

	TagCounts(ctx context.Context) ([]models.TagCount, error)
	TopStores(ctx context.Context) ([]models.TopStore, error)

	// Search ranks stores by text relevance over name+description.
	Search(ctx context.Context, query string) ([]models.Store, error)

	// Near returns stores within the proximity radius, nearest first,
	// projected down to the map payload fields.
	Near(ctx context.Context, lng, lat float64) ([]models.Store, error)
}
