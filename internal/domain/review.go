package domain

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ListingID  uuid.UUID `json:"listing_id" db:"listing_id"`
	ReviewerID uuid.UUID `json:"reviewer_id" db:"reviewer_id"`
	ReviewedID uuid.UUID `json:"reviewed_id" db:"reviewed_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	Reviewer *UserRef        `json:"reviewer,omitempty"`
	Listing  *ListingSummary `json:"listing,omitempty"`
}

type CreateReviewInput struct {
	ListingID  uuid.UUID `json:"listing_id"`
	ReviewedID uuid.UUID `json:"reviewed_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
}

type ReviewFilter struct {
	UserID    *uuid.UUID
	ListingID *uuid.UUID
}
