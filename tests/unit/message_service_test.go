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

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New()
	recipientID := uuid.New()
	listingID := uuid.New()

	input := domain.SendMessageInput{
		ListingID:   listingID,
		RecipientID: recipientID,
		Content:     "Apakah masih tersedia?",
	}

	listing := &domain.Listing{ID: listingID, Title: "Meja makan"}
	recipient := &domain.User{ID: recipientID, FullName: "Budi"}

	t.Run("Success", func(t *testing.T) {
		mockMessages := new(mocks.MessageRepository)
		mockListings := new(mocks.ListingRepository)
		mockUsers := new(mocks.UserRepository)
		mockNotif := new(mocks.NotificationService)
		svc := service.NewMessageService(mockMessages, mockListings, mockUsers, mockNotif)

		mockListings.On("GetByID", ctx, listingID).Return(listing, nil).Once()
		mockUsers.On("GetByID", ctx, recipientID).Return(recipient, nil).Once()
		mockMessages.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.SenderID == senderID && m.RecipientID == recipientID && m.Content == input.Content
		})).Return(nil).Once()
		mockNotif.On("NotifyNewMessage", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.RecipientID == recipientID
		})).Return(nil).Once()

		message, err := svc.Send(ctx, senderID, input)

		assert.NoError(t, err)
		assert.NotNil(t, message)
		mockMessages.AssertExpectations(t)
		mockNotif.AssertExpectations(t)
	})

	t.Run("MissingContent", func(t *testing.T) {
		svc := service.NewMessageService(new(mocks.MessageRepository), new(mocks.ListingRepository), new(mocks.UserRepository), nil)

		_, err := svc.Send(ctx, senderID, domain.SendMessageInput{ListingID: listingID, RecipientID: recipientID})

		assert.ErrorIs(t, err, service.ErrMissingMessageFields)
	})

	t.Run("SelfMessage", func(t *testing.T) {
		svc := service.NewMessageService(new(mocks.MessageRepository), new(mocks.ListingRepository), new(mocks.UserRepository), nil)

		self := input
		self.RecipientID = senderID
		_, err := svc.Send(ctx, senderID, self)

		assert.ErrorIs(t, err, service.ErrSelfMessage)
	})

	t.Run("ListingNotFound", func(t *testing.T) {
		mockListings := new(mocks.ListingRepository)
		svc := service.NewMessageService(new(mocks.MessageRepository), mockListings, new(mocks.UserRepository), nil)

		mockListings.On("GetByID", ctx, listingID).Return(nil, nil).Once()

		_, err := svc.Send(ctx, senderID, input)

		assert.ErrorIs(t, err, service.ErrListingNotFound)
	})

	t.Run("RecipientNotFound", func(t *testing.T) {
		mockListings := new(mocks.ListingRepository)
		mockUsers := new(mocks.UserRepository)
		svc := service.NewMessageService(new(mocks.MessageRepository), mockListings, mockUsers, nil)

		mockListings.On("GetByID", ctx, listingID).Return(listing, nil).Once()
		mockUsers.On("GetByID", ctx, recipientID).Return(nil, nil).Once()

		_, err := svc.Send(ctx, senderID, input)

		assert.ErrorIs(t, err, service.ErrRecipientNotFound)
	})
}

func TestMessageService_ListThreads(t *testing.T) {
	ctx := context.Background()
	me := uuid.New()
	buyer := uuid.New()
	otherBuyer := uuid.New()
	listingID := uuid.New()
	otherListingID := uuid.New()

	meRef := &domain.UserRef{ID: me, FullName: "Saya"}
	buyerRef := &domain.UserRef{ID: buyer, FullName: "Budi"}
	otherBuyerRef := &domain.UserRef{ID: otherBuyer, FullName: "Citra"}
	listingRef := &domain.ListingSummary{ID: listingID, Title: "Meja makan"}
	otherListingRef := &domain.ListingSummary{ID: otherListingID, Title: "Kursi kayu"}

	now := time.Now()

	// Newest first, the way the repository returns them. Both
	// directions of the same exchange must collapse into one thread.
	messages := []domain.Message{
		{
			ID: uuid.New(), ListingID: listingID, SenderID: buyer, RecipientID: me,
			Content: "Oke, besok saya ambil", CreatedAt: now,
			Sender: buyerRef, Recipient: meRef, Listing: listingRef,
		},
		{
			ID: uuid.New(), ListingID: listingID, SenderID: me, RecipientID: buyer,
			Content: "Masih ada", CreatedAt: now.Add(-time.Hour),
			Sender: meRef, Recipient: buyerRef, Listing: listingRef,
		},
		{
			ID: uuid.New(), ListingID: otherListingID, SenderID: otherBuyer, RecipientID: me,
			Content: "Boleh nego?", CreatedAt: now.Add(-2 * time.Hour),
			Sender: otherBuyerRef, Recipient: meRef, Listing: otherListingRef,
		},
	}

	mockMessages := new(mocks.MessageRepository)
	svc := service.NewMessageService(mockMessages, new(mocks.ListingRepository), new(mocks.UserRepository), nil)

	mockMessages.On("ListByParticipant", ctx, me).Return(messages, nil).Once()

	threads, err := svc.ListThreads(ctx, me)

	assert.NoError(t, err)
	assert.Len(t, threads, 2)

	assert.Equal(t, listingID, threads[0].Listing.ID)
	assert.Equal(t, buyer, threads[0].OtherUser.ID)
	assert.Equal(t, "Oke, besok saya ambil", threads[0].LastMessage.Content)

	assert.Equal(t, otherListingID, threads[1].Listing.ID)
	assert.Equal(t, otherBuyer, threads[1].OtherUser.ID)
}

func TestMessageService_ListConversation(t *testing.T) {
	ctx := context.Background()
	me := uuid.New()
	other := uuid.New()
	listingID := uuid.New()

	t.Run("EmptyResultIsNotNil", func(t *testing.T) {
		mockMessages := new(mocks.MessageRepository)
		svc := service.NewMessageService(mockMessages, new(mocks.ListingRepository), new(mocks.UserRepository), nil)

		mockMessages.On("ListConversation", ctx, listingID, me, other).Return(nil, nil).Once()

		messages, err := svc.ListConversation(ctx, me, listingID, other)

		assert.NoError(t, err)
		assert.NotNil(t, messages)
		assert.Len(t, messages, 0)
	})
}
