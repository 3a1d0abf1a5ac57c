package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"delish/models"
)

// testObjectID builds a deterministic ObjectID for assertions.
func testObjectID(n byte) primitive.ObjectID {
	var id primitive.ObjectID
	id[11] = n
	return id
}

// MockStoreRepository is a mock implementation of repositories.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(ctx context.Context, store *models.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, store *models.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepository) FindBySlug(ctx context.Context, slug string) (*models.Store, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Store, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *MockStoreRepository) FindPage(ctx context.Context, page, limit int) ([]models.Store, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *MockStoreRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepository) CountSlugLike(ctx context.Context, base string) (int64, error) {
	args := m.Called(ctx, base)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepository) FindByTag(ctx context.Context, tag string) ([]models.Store, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *MockStoreRepository) TagCounts(ctx context.Context) ([]models.TagCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.TagCount), args.Error(1)
}

func (m *MockStoreRepository) TopStores(ctx context.Context) ([]models.TopStore, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.TopStore), args.Error(1)
}

func (m *MockStoreRepository) Search(ctx context.Context, query string) ([]models.Store, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *MockStoreRepository) Near(ctx context.Context, lng, lat float64) ([]models.Store, error) {
	args := m.Called(ctx, lng, lat)
	return args.Get(0).([]models.Store), args.Error(1)
}

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	args := m.Called(ctx, id, token, expires)
	return args.Error(0)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*models.User, error) {
	args := m.Called(ctx, token, now, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) PullHeart(ctx context.Context, userID, storeID primitive.ObjectID) (*models.User, bool, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) AddHeart(ctx context.Context, userID, storeID primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockReviewRepository is a mock implementation of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.Review, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]models.Review), args.Error(1)
}

// MockMailer records sent mail instead of delivering it.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(user *models.User, subject, template string, vars map[string]string) error {
	args := m.Called(user, subject, template, vars)
	return args.Error(0)
}
