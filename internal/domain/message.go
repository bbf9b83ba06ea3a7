package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Message rows are append-only; conversations and threads are derived
// from them at read time.
type Message struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ListingID   uuid.UUID `json:"listing_id" db:"listing_id"`
	SenderID    uuid.UUID `json:"sender_id" db:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id" db:"recipient_id"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Sender    *UserRef        `json:"sender,omitempty"`
	Recipient *UserRef        `json:"recipient,omitempty"`
	Listing   *ListingSummary `json:"listing,omitempty"`
}

// ListingSummary is the listing projection embedded in thread views.
type ListingSummary struct {
	ID     uuid.UUID      `json:"id" db:"id"`
	Title  string         `json:"title" db:"title"`
	Images pq.StringArray `json:"images" db:"images"`
}

type SendMessageInput struct {
	ListingID   uuid.UUID `json:"listing_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Content     string    `json:"content"`
}

// Thread is a derived grouping of messages sharing a listing and a
// pair of participants, summarized by its most recent message. It is
// never persisted.
type Thread struct {
	Listing     *ListingSummary `json:"listing"`
	OtherUser   *UserRef        `json:"other_user"`
	LastMessage *Message        `json:"last_message"`
}
