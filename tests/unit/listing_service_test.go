package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pasar-warga/internal/domain"
	"pasar-warga/internal/service"
	"pasar-warga/tests/mocks"
)

func TestListingService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categoryID := uuid.New()

	input := domain.CreateListingInput{
		Title:       "Sepeda lipat",
		Description: "Masih mulus, jarang dipakai",
		Condition:   domain.ConditionGood,
		CategoryID:  categoryID,
		Images:      []string{"https://cdn.example.com/sepeda.jpg"},
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.ListingRepository)
		mockCategories := new(mocks.CategoryRepository)
		svc := service.NewListingService(mockRepo, mockCategories, nil, nil)

		mockCategories.On("GetByID", ctx, categoryID).Return(&domain.Category{ID: categoryID, Name: "Olahraga"}, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.Listing) bool {
			return l.UserID == userID &&
				l.Status == domain.ListingStatusActive &&
				l.Title == input.Title &&
				l.ExpiresAt.After(time.Now().Add(29*24*time.Hour))
		})).Return(nil).Once()

		listing, err := svc.Create(ctx, userID, input)

		assert.NoError(t, err)
		assert.NotNil(t, listing)
		assert.Equal(t, domain.ListingStatusActive, listing.Status)
		mockRepo.AssertExpectations(t)
		mockCategories.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		mockRepo := new(mocks.ListingRepository)
		mockCategories := new(mocks.CategoryRepository)
		svc := service.NewListingService(mockRepo, mockCategories, nil, nil)

		_, err := svc.Create(ctx, userID, domain.CreateListingInput{Title: "Sepeda"})

		assert.ErrorIs(t, err, service.ErrMissingListingFields)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("UnknownCondition", func(t *testing.T) {
		mockRepo := new(mocks.ListingRepository)
		mockCategories := new(mocks.CategoryRepository)
		svc := service.NewListingService(mockRepo, mockCategories, nil, nil)

		bad := input
		bad.Condition = "mint"
		_, err := svc.Create(ctx, userID, bad)

		assert.ErrorIs(t, err, service.ErrInvalidItemCondition)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		mockRepo := new(mocks.ListingRepository)
		mockCategories := new(mocks.CategoryRepository)
		svc := service.NewListingService(mockRepo, mockCategories, nil, nil)

		mockCategories.On("GetByID", ctx, categoryID).Return(nil, nil).Once()

		_, err := svc.Create(ctx, userID, input)

		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestListingService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	otherID := uuid.New()
	listingID := uuid.New()

	active := &domain.Listing{
		ID:     listingID,
		UserID: ownerID,
		Title:  "Rak buku",
		Status: domain.ListingStatusActive,
	}

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(mocks.ListingRepository)
		svc := service.NewListingService(mockRepo, new(mocks.CategoryRepository), nil, nil)

		mockRepo.On("GetByID", ctx, listingID).Return(nil, nil).Once()

		_, err := svc.UpdateStatus(ctx, ownerID, listingID, domain.ListingStatusSold)

		assert.ErrorIs(t, err, service.ErrListingNotFound)
	})

	t.Run("NotOwner", func(t *testing.T) {
		mockRepo := new(mocks.ListingRepository)
		svc := service.NewListingService(mockRepo, new(mocks.CategoryRepository), nil, nil)

		mockRepo.On("GetByID", ctx, listingID).Return(active, nil).Once()

		_, err := svc.UpdateStatus(ctx, otherID, listingID, domain.ListingStatusSold)

		assert.ErrorIs(t, err, service.ErrNotListingOwner)
		mockRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		mockRepo := new(mocks.ListingRepository)
		svc := service.NewListingService(mockRepo, new(mocks.CategoryRepository), nil, nil)

		_, err := svc.UpdateStatus(ctx, ownerID, listingID, "archived")

		assert.ErrorIs(t, err, service.ErrInvalidListingStatus)
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("OwnerMarksSold", func(t *testing.T) {
		mockRepo := new(mocks.ListingRepository)
		mockNotif := new(mocks.NotificationService)
		svc := service.NewListingService(mockRepo, new(mocks.CategoryRepository), mockNotif, nil)

		sold := &domain.Listing{ID: listingID, UserID: ownerID, Title: "Rak buku", Status: domain.ListingStatusSold}

		mockRepo.On("GetByID", ctx, listingID).Return(active, nil).Once()
		mockRepo.On("UpdateStatus", ctx, listingID, domain.ListingStatusSold).Return(sold, nil).Once()
		mockNotif.On("NotifyListingSold", ctx, sold).Return(nil).Once()

		listing, err := svc.UpdateStatus(ctx, ownerID, listingID, domain.ListingStatusSold)

		assert.NoError(t, err)
		assert.Equal(t, domain.ListingStatusSold, listing.Status)
		mockRepo.AssertExpectations(t)
		mockNotif.AssertExpectations(t)
	})
}

func TestListingService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyResultIsNotNil", func(t *testing.T) {
		mockRepo := new(mocks.ListingRepository)
		svc := service.NewListingService(mockRepo, new(mocks.CategoryRepository), nil, nil)

		filter := domain.ListingFilter{Query: "tidak ada"}
		mockRepo.On("List", ctx, filter).Return(nil, nil).Once()

		listings, err := svc.List(ctx, filter)

		assert.NoError(t, err)
		assert.NotNil(t, listings)
		assert.Len(t, listings, 0)
	})
}
