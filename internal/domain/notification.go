package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifListingSold NotificationType = "listing_sold"
	NotifMessage     NotificationType = "message"
	NotifReview      NotificationType = "review"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifListingSold, NotifMessage, NotifReview:
		return true
	default:
		return false
	}
}

type CreateNotificationInput struct {
	UserID  *uuid.UUID       `json:"user_id"`
	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}

type MarkNotificationInput struct {
	Read bool `json:"read"`
}

// NotificationListLimit caps the notification feed to the most recent
// entries.
const NotificationListLimit = 20
