package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"delish/models"
	"delish/services"
)

func storeInput(name string) services.StoreInput {
	lng, lat := -79.38, 43.65
	return services.StoreInput{
		Name:    name,
		Address: "123 Main St",
		Lng:     &lng,
		Lat:     &lat,
	}
}

func TestCreate_SlugFromName(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	service := services.NewStoreService(storeRepo, new(MockUserRepository), new(MockReviewRepository))

	storeRepo.On("CountSlugLike", mock.Anything, "coffee-heaven").Return(int64(0), nil).Once()
	storeRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Store) bool {
		return s.Slug == "coffee-heaven"
	})).Return(nil).Once()

	store, err := service.Create(context.Background(), testObjectID(1), storeInput("Coffee Heaven"))

	assert.NoError(t, err)
	assert.Equal(t, "coffee-heaven", store.Slug)
	assert.Equal(t, "Point", store.Location.Type)
	storeRepo.AssertExpectations(t)
}

func TestCreate_SlugCollisionGetsSuffix(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	service := services.NewStoreService(storeRepo, new(MockUserRepository), new(MockReviewRepository))

	// One existing "coffee-heaven" means the second store becomes -2.
	storeRepo.On("CountSlugLike", mock.Anything, "coffee-heaven").Return(int64(1), nil).Once()
	storeRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Store) bool {
		return s.Slug == "coffee-heaven-2"
	})).Return(nil).Once()

	store, err := service.Create(context.Background(), testObjectID(1), storeInput("Coffee Heaven"))

	assert.NoError(t, err)
	assert.Equal(t, "coffee-heaven-2", store.Slug)
	storeRepo.AssertExpectations(t)
}

func TestCreate_SlugCollisionHigherSuffix(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	service := services.NewStoreService(storeRepo, new(MockUserRepository), new(MockReviewRepository))

	storeRepo.On("CountSlugLike", mock.Anything, "coffee-heaven").Return(int64(3), nil).Once()
	storeRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Store) bool {
		return s.Slug == "coffee-heaven-4"
	})).Return(nil).Once()

	_, err := service.Create(context.Background(), testObjectID(1), storeInput("Coffee Heaven"))

	assert.NoError(t, err)
	storeRepo.AssertExpectations(t)
}

func TestCreate_TrimsAndRequiresName(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	service := services.NewStoreService(storeRepo, new(MockUserRepository), new(MockReviewRepository))

	_, err := service.Create(context.Background(), testObjectID(1), storeInput("   "))

	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	storeRepo.AssertNotCalled(t, "Create")
}

func TestCreate_RequiresCoordinates(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	service := services.NewStoreService(storeRepo, new(MockUserRepository), new(MockReviewRepository))

	in := storeInput("Coffee Heaven")
	in.Lng = nil

	_, err := service.Create(context.Background(), testObjectID(1), in)

	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	storeRepo.AssertNotCalled(t, "Create")
}
