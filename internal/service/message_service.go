package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pasar-warga/internal/domain"
	"pasar-warga/internal/repository"
)

var (
	ErrMissingMessageFields = errors.New("listing, recipient and content are required")
	ErrSelfMessage          = errors.New("cannot send a message to yourself")
	ErrRecipientNotFound    = errors.New("recipient not found")
)

type MessageService interface {
	Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error)
	ListConversation(ctx context.Context, actorID, listingID, otherUserID uuid.UUID) ([]domain.Message, error)
	ListThreads(ctx context.Context, actorID uuid.UUID) ([]domain.Thread, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	notifSvc    NotificationService
}

func NewMessageService(messageRepo repository.MessageRepository, listingRepo repository.ListingRepository, userRepo repository.UserRepository, notifSvc NotificationService) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		notifSvc:    notifSvc,
	}
}

func (s *messageService) Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error) {
	if input.Content == "" || input.ListingID == uuid.Nil || input.RecipientID == uuid.Nil {
		return nil, ErrMissingMessageFields
	}
	if input.RecipientID == senderID {
		return nil, ErrSelfMessage
	}

	listing, err := s.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	recipient, err := s.userRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	message := &domain.Message{
		ID:          uuid.New(),
		ListingID:   input.ListingID,
		SenderID:    senderID,
		RecipientID: input.RecipientID,
		Content:     input.Content,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := s.notifSvc.NotifyNewMessage(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *messageService) ListConversation(ctx context.Context, actorID, listingID, otherUserID uuid.UUID) ([]domain.Message, error) {
	messages, err := s.messageRepo.ListConversation(ctx, listingID, actorID, otherUserID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// ListThreads folds the actor's flat message rows into conversations.
// The grouping key is the listing plus the counterpart, so both
// directions of the same exchange land in one thread; rows arrive
// newest first and the first row per key becomes the summary.
func (s *messageService) ListThreads(ctx context.Context, actorID uuid.UUID) ([]domain.Thread, error) {
	messages, err := s.messageRepo.ListByParticipant(ctx, actorID)
	if err != nil {
		return nil, err
	}

	threads := []domain.Thread{}
	seen := make(map[string]bool)

	for i := range messages {
		m := &messages[i]

		otherID := m.SenderID
		otherUser := m.Sender
		if m.SenderID == actorID {
			otherID = m.RecipientID
			otherUser = m.Recipient
		}

		key := m.ListingID.String() + ":" + otherID.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		threads = append(threads, domain.Thread{
			Listing:     m.Listing,
			OtherUser:   otherUser,
			LastMessage: m,
		})
	}

	return threads, nil
}
