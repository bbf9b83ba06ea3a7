package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pasar-warga/internal/domain"
	"pasar-warga/internal/repository"
)

var (
	ErrListingNotFound      = errors.New("listing not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrNotListingOwner      = errors.New("only the owner may change this listing")
	ErrInvalidListingStatus = errors.New("invalid listing status")
	ErrMissingListingFields = errors.New("title, description, condition and category are required")
	ErrInvalidItemCondition = errors.New("invalid item condition")
)

const browseCacheTTL = time.Minute

type ListingService interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateListingInput) (*domain.Listing, error)
	List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error)
	UpdateStatus(ctx context.Context, actorID, listingID uuid.UUID, status domain.ListingStatus) (*domain.Listing, error)
}

type listingService struct {
	listingRepo  repository.ListingRepository
	categoryRepo repository.CategoryRepository
	notifSvc     NotificationService
	redis        *redis.Client
}

func NewListingService(listingRepo repository.ListingRepository, categoryRepo repository.CategoryRepository, notifSvc NotificationService, redis *redis.Client) ListingService {
	return &listingService{
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
		notifSvc:     notifSvc,
		redis:        redis,
	}
}

func (s *listingService) Create(ctx context.Context, userID uuid.UUID, input domain.CreateListingInput) (*domain.Listing, error) {
	if input.Title == "" || input.Description == "" || input.Condition == "" || input.CategoryID == uuid.Nil {
		return nil, ErrMissingListingFields
	}
	if !input.Condition.IsValid() {
		return nil, ErrInvalidItemCondition
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	now := time.Now()
	listing := &domain.Listing{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Condition:   input.Condition,
		Images:      input.Images,
		Status:      domain.ListingStatusActive,
		ExpiresAt:   now.Add(domain.ListingTTL),
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	listing.Category = category
	s.invalidateBrowseCache(ctx)
	return listing, nil
}

func (s *listingService) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	cacheKey := browseCacheKey(filter)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var listings []domain.Listing
			if json.Unmarshal([]byte(cached), &listings) == nil {
				return listings, nil
			}
		}
	}

	listings, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []domain.Listing{}
	}

	if s.redis != nil {
		if listingsJSON, err := json.Marshal(listings); err == nil {
			_ = s.redis.Set(ctx, cacheKey, listingsJSON, browseCacheTTL).Err()
		}
	}

	return listings, nil
}

func (s *listingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

func (s *listingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	listings, err := s.listingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, nil
}

func (s *listingService) UpdateStatus(ctx context.Context, actorID, listingID uuid.UUID, status domain.ListingStatus) (*domain.Listing, error) {
	if !status.IsValid() {
		return nil, ErrInvalidListingStatus
	}

	// Resolve before the ownership check so absence is reported as
	// NotFound, never as a permission failure.
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	if listing.UserID != actorID {
		return nil, ErrNotListingOwner
	}

	updated, err := s.listingRepo.UpdateStatus(ctx, listingID, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrListingNotFound
	}

	if status == domain.ListingStatusSold {
		if err := s.notifSvc.NotifyListingSold(ctx, updated); err != nil {
			return nil, err
		}
	}

	s.invalidateBrowseCache(ctx)
	return updated, nil
}

func browseCacheKey(filter domain.ListingFilter) string {
	categoryID := ""
	if filter.CategoryID != nil {
		categoryID = filter.CategoryID.String()
	}
	return fmt.Sprintf("listings:q=%s:cat=%s:cond=%s:sort=%s",
		filter.Query, categoryID, filter.Condition, filter.Sort)
}

func (s *listingService) invalidateBrowseCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys, _ := s.redis.Keys(ctx, "listings:*").Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}
