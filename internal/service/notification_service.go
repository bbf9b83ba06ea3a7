package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pasar-warga/internal/domain"
	"pasar-warga/internal/repository"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidNotifType     = errors.New("unknown notification type")
	ErrNotifTargetForbidden = errors.New("cannot create notifications for another user")
)

type NotificationService interface {
	Create(ctx context.Context, actorID uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkRead(ctx context.Context, actorID, id uuid.UUID, read bool) (*domain.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	NotifyListingSold(ctx context.Context, listing *domain.Listing) error
	NotifyNewMessage(ctx context.Context, message *domain.Message) error
	NotifyNewReview(ctx context.Context, review *domain.Review) error
}

type notificationService struct {
	notifRepo   repository.NotificationRepository
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, listingRepo repository.ListingRepository) NotificationService {
	return &notificationService{
		notifRepo:   notifRepo,
		userRepo:    userRepo,
		listingRepo: listingRepo,
	}
}

// Create is the user-facing endpoint. The type must belong to the known
// set and the target defaults to, and must be, the caller; the domain
// event helpers below are not subject to that restriction.
func (s *notificationService) Create(ctx context.Context, actorID uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error) {
	if !input.Type.IsValid() {
		return nil, ErrInvalidNotifType
	}
	if input.UserID != nil && *input.UserID != actorID {
		return nil, ErrNotifTargetForbidden
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  actorID,
		Type:    input.Type,
		Title:   input.Title,
		Message: input.Message,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}
	return notif, nil
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	notifications, err := s.notifRepo.ListByUser(ctx, userID, domain.NotificationListLimit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actorID, id uuid.UUID, read bool) (*domain.Notification, error) {
	notif, err := s.notifRepo.SetRead(ctx, id, actorID, read)
	if err != nil {
		return nil, err
	}
	if notif == nil {
		// Absent row and someone else's row look the same on purpose.
		return nil, ErrNotificationNotFound
	}
	return notif, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// NotifyListingSold notifies the listing owner. The owner is also the
// actor who marked the listing sold; that mirrors the product behavior
// this service replaces.
func (s *notificationService) NotifyListingSold(ctx context.Context, listing *domain.Listing) error {
	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  listing.UserID,
		Type:    domain.NotifListingSold,
		Title:   "Listing Sold",
		Message: fmt.Sprintf("Your listing %q has been marked as sold.", listing.Title),
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *notificationService) NotifyNewMessage(ctx context.Context, message *domain.Message) error {
	sender, err := s.userRepo.GetByID(ctx, message.SenderID)
	if err != nil {
		return fmt.Errorf("failed to get sender: %w", err)
	}

	listing, err := s.listingRepo.GetByID(ctx, message.ListingID)
	if err != nil {
		return fmt.Errorf("failed to get listing: %w", err)
	}

	senderName := "Someone"
	if sender != nil {
		senderName = sender.FullName
	}
	listingTitle := ""
	if listing != nil {
		listingTitle = listing.Title
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  message.RecipientID,
		Type:    domain.NotifMessage,
		Title:   "New Message",
		Message: fmt.Sprintf("%s sent you a message about %q", senderName, listingTitle),
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *notificationService) NotifyNewReview(ctx context.Context, review *domain.Review) error {
	reviewer, err := s.userRepo.GetByID(ctx, review.ReviewerID)
	if err != nil {
		return fmt.Errorf("failed to get reviewer: %w", err)
	}

	listing, err := s.listingRepo.GetByID(ctx, review.ListingID)
	if err != nil {
		return fmt.Errorf("failed to get listing: %w", err)
	}

	reviewerName := "Someone"
	if reviewer != nil {
		reviewerName = reviewer.FullName
	}
	listingTitle := ""
	if listing != nil {
		listingTitle = listing.Title
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  review.ReviewedID,
		Type:    domain.NotifReview,
		Title:   "New Review",
		Message: fmt.Sprintf("%s left you a %d-star review for %q", reviewerName, review.Rating, listingTitle),
	}
	return s.notifRepo.Create(ctx, notif)
}
