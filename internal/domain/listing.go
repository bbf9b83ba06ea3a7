package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Listing struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	UserID      uuid.UUID      `json:"user_id" db:"user_id"`
	CategoryID  uuid.UUID      `json:"category_id" db:"category_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Price       *float64       `json:"price" db:"price"`
	Condition   ItemCondition  `json:"condition" db:"condition"`
	Images      pq.StringArray `json:"images" db:"images"`
	Status      ListingStatus  `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at" db:"expires_at"`

	Category *Category `json:"category,omitempty"`
	Seller   *UserRef  `json:"seller,omitempty"`
}

type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusSold   ListingStatus = "sold"
)

func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusActive, ListingStatusSold:
		return true
	default:
		return false
	}
}

type ItemCondition string

const (
	ConditionNew     ItemCondition = "new"
	ConditionLikeNew ItemCondition = "like_new"
	ConditionGood    ItemCondition = "good"
	ConditionFair    ItemCondition = "fair"
	ConditionPoor    ItemCondition = "poor"
)

func (c ItemCondition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	default:
		return false
	}
}

// ListingTTL is how long a new listing stays visible in browse results.
const ListingTTL = 30 * 24 * time.Hour

type CreateListingInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       *float64      `json:"price"`
	Condition   ItemCondition `json:"condition"`
	CategoryID  uuid.UUID     `json:"category_id"`
	Images      []string      `json:"images"`
}

type ListingFilter struct {
	Query      string
	CategoryID *uuid.UUID
	Condition  ItemCondition
	Sort       ListingSort
}

type ListingSort string

const (
	SortNewest    ListingSort = "newest"
	SortOldest    ListingSort = "oldest"
	SortPriceLow  ListingSort = "price-low"
	SortPriceHigh ListingSort = "price-high"
)
