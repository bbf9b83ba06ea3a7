package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Category     CategoryRepository
	Listing      ListingRepository
	Message      MessageRepository
	Review       ReviewRepository
	Notification NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Category:     NewCategoryRepository(db),
		Listing:      NewListingRepository(db),
		Message:      NewMessageRepository(db),
		Review:       NewReviewRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
