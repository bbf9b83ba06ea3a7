package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pasar-warga/internal/domain"
	"pasar-warga/internal/service"
	"pasar-warga/tests/mocks"
)

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("DefaultsTargetToActor", func(t *testing.T) {
		mockNotifs := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockNotifs, new(mocks.UserRepository), new(mocks.ListingRepository))

		mockNotifs.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == actorID && n.Type == domain.NotifMessage
		})).Return(nil).Once()

		notif, err := svc.Create(ctx, actorID, domain.CreateNotificationInput{
			Type:    domain.NotifMessage,
			Title:   "New Message",
			Message: "Budi sent you a message",
		})

		assert.NoError(t, err)
		assert.Equal(t, actorID, notif.UserID)
		mockNotifs.AssertExpectations(t)
	})

	t.Run("UnknownType", func(t *testing.T) {
		svc := service.NewNotificationService(new(mocks.NotificationRepository), new(mocks.UserRepository), new(mocks.ListingRepository))

		_, err := svc.Create(ctx, actorID, domain.CreateNotificationInput{Type: "promo"})

		assert.ErrorIs(t, err, service.ErrInvalidNotifType)
	})

	t.Run("ForeignTargetForbidden", func(t *testing.T) {
		svc := service.NewNotificationService(new(mocks.NotificationRepository), new(mocks.UserRepository), new(mocks.ListingRepository))

		other := uuid.New()
		_, err := svc.Create(ctx, actorID, domain.CreateNotificationInput{
			UserID: &other,
			Type:   domain.NotifReview,
		})

		assert.ErrorIs(t, err, service.ErrNotifTargetForbidden)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	notifID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockNotifs := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockNotifs, new(mocks.UserRepository), new(mocks.ListingRepository))

		updated := &domain.Notification{ID: notifID, UserID: actorID, IsRead: true}
		mockNotifs.On("SetRead", ctx, notifID, actorID, true).Return(updated, nil).Once()

		notif, err := svc.MarkRead(ctx, actorID, notifID, true)

		assert.NoError(t, err)
		assert.True(t, notif.IsRead)
	})

	t.Run("NotOwnedOrMissing", func(t *testing.T) {
		mockNotifs := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockNotifs, new(mocks.UserRepository), new(mocks.ListingRepository))

		mockNotifs.On("SetRead", ctx, notifID, actorID, true).Return(nil, nil).Once()

		_, err := svc.MarkRead(ctx, actorID, notifID, true)

		assert.ErrorIs(t, err, service.ErrNotificationNotFound)
	})
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockNotifs := new(mocks.NotificationRepository)
	svc := service.NewNotificationService(mockNotifs, new(mocks.UserRepository), new(mocks.ListingRepository))

	mockNotifs.On("ListByUser", ctx, userID, domain.NotificationListLimit).Return(nil, nil).Once()

	notifications, err := svc.List(ctx, userID)

	assert.NoError(t, err)
	assert.NotNil(t, notifications)
	assert.Len(t, notifications, 0)
	mockNotifs.AssertExpectations(t)
}

func TestNotificationService_NotifyListingSold(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	mockNotifs := new(mocks.NotificationRepository)
	svc := service.NewNotificationService(mockNotifs, new(mocks.UserRepository), new(mocks.ListingRepository))

	listing := &domain.Listing{ID: uuid.New(), UserID: ownerID, Title: "Rak buku"}

	mockNotifs.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == ownerID &&
			n.Type == domain.NotifListingSold &&
			n.Message == `Your listing "Rak buku" has been marked as sold.`
	})).Return(nil).Once()

	err := svc.NotifyListingSold(ctx, listing)

	assert.NoError(t, err)
	mockNotifs.AssertExpectations(t)
}

func TestNotificationService_NotifyNewMessage(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New()
	recipientID := uuid.New()
	listingID := uuid.New()

	mockNotifs := new(mocks.NotificationRepository)
	mockUsers := new(mocks.UserRepository)
	mockListings := new(mocks.ListingRepository)
	svc := service.NewNotificationService(mockNotifs, mockUsers, mockListings)

	message := &domain.Message{ID: uuid.New(), ListingID: listingID, SenderID: senderID, RecipientID: recipientID}

	mockUsers.On("GetByID", ctx, senderID).Return(&domain.User{ID: senderID, FullName: "Budi"}, nil).Once()
	mockListings.On("GetByID", ctx, listingID).Return(&domain.Listing{ID: listingID, Title: "Meja makan"}, nil).Once()
	mockNotifs.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == recipientID &&
			n.Type == domain.NotifMessage &&
			n.Message == `Budi sent you a message about "Meja makan"`
	})).Return(nil).Once()

	err := svc.NotifyNewMessage(ctx, message)

	assert.NoError(t, err)
	mockNotifs.AssertExpectations(t)
}
