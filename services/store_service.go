package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"delish/models"
	"delish/repositories"
)

// PageSize is the fixed store-listing page size.
const PageSize = 4

var validate = validator.New()

// StoreService handles store creation, editing, browsing, search and
// favorites. All derived views are computed by the repositories; the
// service owns validation, slug assignment and authorization.
type StoreService struct {
	stores  repositories.StoreRepository
	users   repositories.UserRepository
	reviews repositories.ReviewRepository
}

func NewStoreService(stores repositories.StoreRepository, users repositories.UserRepository, reviews repositories.ReviewRepository) *StoreService {
	return &StoreService{stores: stores, users: users, reviews: reviews}
}

// StoreInput carries the writable store fields.
type StoreInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Address     string   `json:"address" validate:"required"`
	Lng         *float64 `json:"lng" validate:"required,longitude"`
	Lat         *float64 `json:"lat" validate:"required,latitude"`
	Photo       string   `json:"photo"`
}

func (in *StoreInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			return invalidField(field, fmt.Sprintf("failed %q validation", verrs[0].Tag()))
		}
		return err
	}
	return nil
}

// Create validates the input, assigns a unique slug and persists the
// store. A duplicate-key conflict from a concurrent writer with the
// same name re-derives the slug and retries.
func (s *StoreService) Create(ctx context.Context, authorID primitive.ObjectID, in StoreInput) (*models.Store, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	store := &models.Store{
		Name:        in.Name,
		Description: in.Description,
		Tags:        in.Tags,
		Created:     time.Now(),
		Photo:       in.Photo,
		Author:      authorID,
		Location: models.Location{
			Type:        "Point",
			Coordinates: []float64{*in.Lng, *in.Lat},
			Address:     in.Address,
		},
	}

	for attempt := 0; attempt < slugCreateRetries; attempt++ {
		slug, err := s.uniqueSlug(ctx, store.Name)
		if err != nil {
			return nil, err
		}
		store.Slug = slug

		err = s.stores.Create(ctx, store)
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("could not assign a unique slug for %q", in.Name)
}

// Update replaces the writable fields of a store. Only the author may
// edit; the check runs before any mutation. The slug is recomputed only
// when the name actually changed.
func (s *StoreService) Update(ctx context.Context, userID primitive.ObjectID, storeID string, in StoreInput) (*models.Store, error) {
	id, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, invalidField("id", "invalid store id")
	}

	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if store.Author != userID {
		return nil, ErrNotOwner
	}

	if err := in.validate(); err != nil {
		return nil, err
	}

	nameChanged := store.Name != in.Name
	store.Name = in.Name
	store.Description = in.Description
	store.Tags = in.Tags
	store.Photo = in.Photo
	store.Location = models.Location{
		Type:        "Point",
		Coordinates: []float64{*in.Lng, *in.Lat},
		Address:     in.Address,
	}

	if !nameChanged {
		if err := s.stores.Update(ctx, store); err != nil {
			return nil, mapNotFound(err)
		}
		return store, nil
	}

	for attempt := 0; attempt < slugCreateRetries; attempt++ {
		slug, err := s.uniqueSlug(ctx, store.Name)
		if err != nil {
			return nil, err
		}
		store.Slug = slug

		err = s.stores.Update(ctx, store)
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		if err != nil {
			return nil, mapNotFound(err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("could not assign a unique slug for %q", in.Name)
}

// StoreDetail is a store with its author and reviews joined explicitly.
type StoreDetail struct {
	Store   *models.Store   `json:"store"`
	Author  *models.User    `json:"author"`
	Reviews []models.Review `json:"reviews"`
}

func (s *StoreService) GetBySlug(ctx context.Context, slug string) (*StoreDetail, error) {
	store, err := s.stores.FindBySlug(ctx, slug)
	if err != nil {
		return nil, mapNotFound(err)
	}

	author, err := s.users.FindByID(ctx, store.Author)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	reviews, err := s.reviews.FindByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	return &StoreDetail{Store: store, Author: author, Reviews: reviews}, nil
}

// StorePage is one page of the store listing. Page is the page that was
// actually served; when the requested page was past the end it is
// clamped to the last valid page and Notice explains the move.
type StorePage struct {
	Stores []models.Store `json:"stores"`
	Page   int            `json:"page"`
	Pages  int            `json:"pages"`
	Count  int64          `json:"count"`
	Notice string         `json:"notice,omitempty"`
}

func (s *StoreService) List(ctx context.Context, page int) (*StorePage, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.stores.Count(ctx)
	if err != nil {
		return nil, err
	}

	pages := int(math.Ceil(float64(count) / float64(PageSize)))
	if pages < 1 {
		pages = 1
	}

	result := &StorePage{Page: page, Pages: pages, Count: count}
	if page > pages {
		result.Notice = fmt.Sprintf("Page %d doesn't exist so you have been put on page %d.", page, pages)
		result.Page = pages
	}

	stores, err := s.stores.FindPage(ctx, result.Page, PageSize)
	if err != nil {
		return nil, err
	}
	result.Stores = stores
	return result, nil
}

// TagPage is the tag-browsing view: the tag frequency list alongside
// the stores carrying the selected tag.
type TagPage struct {
	Tag    string            `json:"tag,omitempty"`
	Tags   []models.TagCount `json:"tags"`
	Stores []models.Store    `json:"stores"`
}

func (s *StoreService) ByTag(ctx context.Context, tag string) (*TagPage, error) {
	tags, err := s.stores.TagCounts(ctx)
	if err != nil {
		return nil, err
	}

	stores, err := s.stores.FindByTag(ctx, tag)
	if err != nil {
		return nil, err
	}

	return &TagPage{Tag: tag, Tags: tags, Stores: stores}, nil
}

func (s *StoreService) TopStores(ctx context.Context) ([]models.TopStore, error) {
	return s.stores.TopStores(ctx)
}

// Search ranks stores by text relevance. An empty query matches
// nothing rather than erroring.
func (s *StoreService) Search(ctx context.Context, query string) ([]models.Store, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Store{}, nil
	}
	return s.stores.Search(ctx, query)
}

// Near finds stores around the coordinate, nearest first.
func (s *StoreService) Near(ctx context.Context, lng, lat float64) ([]models.Store, error) {
	if math.IsNaN(lng) || math.IsInf(lng, 0) || lng < -180 || lng > 180 {
		return nil, invalidField("lng", "must be a valid longitude")
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return nil, invalidField("lat", "must be a valid latitude")
	}
	return s.stores.Near(ctx, lng, lat)
}

// ToggleHeart flips membership of the store in the user's favorites.
// The pull carries the membership check in its filter, so the toggle
// degrades to last-writer-wins under concurrent calls instead of
// reviving a read-then-write race.
func (s *StoreService) ToggleHeart(ctx context.Context, userID primitive.ObjectID, storeID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, invalidField("id", "invalid store id")
	}

	user, pulled, err := s.users.PullHeart(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if pulled {
		return user, nil
	}

	user, err = s.users.AddHeart(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

// Hearts returns the user's favorited stores.
func (s *StoreService) Hearts(ctx context.Context, userID primitive.ObjectID) ([]models.Store, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return s.stores.FindByIDs(ctx, user.Hearts)
}

// AddReview attaches a review to a store.
func (s *StoreService) AddReview(ctx context.Context, authorID primitive.ObjectID, storeID, text string, rating int) (*models.Review, error) {
	id, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, invalidField("id", "invalid store id")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalidField("text", "review text is required")
	}
	if rating < 1 || rating > 5 {
		return nil, invalidField("rating", "must be between 1 and 5")
	}

	if _, err := s.stores.FindByID(ctx, id); err != nil {
		return nil, mapNotFound(err)
	}

	review := &models.Review{
		Store:   id,
		Author:  authorID,
		Text:    text,
		Rating:  rating,
		Created: time.Now(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
