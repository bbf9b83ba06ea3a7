package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pasar-warga/internal/domain"
	"pasar-warga/internal/repository"
)

var (
	ErrMissingReviewFields  = errors.New("rating, reviewed user and listing are required")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrListingNotSold       = errors.New("cannot review an unsold listing")
	ErrNotReviewParticipant = errors.New("not authorized to review this listing")
	ErrAlreadyReviewed      = errors.New("you have already reviewed this listing")
	ErrMissingReviewFilter  = errors.New("either a user or a listing filter is required")
)

type ReviewService interface {
	Create(ctx context.Context, actorID uuid.UUID, input domain.CreateReviewInput) (*domain.Review, error)
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	listingRepo repository.ListingRepository
	notifSvc    NotificationService
}

func NewReviewService(reviewRepo repository.ReviewRepository, listingRepo repository.ListingRepository, notifSvc NotificationService) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
		notifSvc:    notifSvc,
	}
}

// Create checks its preconditions in a fixed order so each failure maps
// to a distinct response: missing fields, bad rating, absent listing,
// unsold listing, non-participant, duplicate.
func (s *reviewService) Create(ctx context.Context, actorID uuid.UUID, input domain.CreateReviewInput) (*domain.Review, error) {
	if input.Rating == 0 || input.ReviewedID == uuid.Nil || input.ListingID == uuid.Nil {
		return nil, ErrMissingReviewFields
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	listing, err := s.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	if listing.Status != domain.ListingStatusSold {
		return nil, ErrListingNotSold
	}

	if actorID != listing.UserID && actorID != input.ReviewedID {
		return nil, ErrNotReviewParticipant
	}

	exists, err := s.reviewRepo.ExistsByListingAndReviewer(ctx, input.ListingID, actorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &domain.Review{
		ID:         uuid.New(),
		ListingID:  input.ListingID,
		ReviewerID: actorID,
		ReviewedID: input.ReviewedID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// A concurrent submission can pass the existence check above;
		// the unique index catches it.
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	if err := s.notifSvc.NotifyNewReview(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	if filter.UserID == nil && filter.ListingID == nil {
		return nil, ErrMissingReviewFilter
	}

	reviews, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}
