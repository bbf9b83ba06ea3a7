package handler

import (
	"pasar-warga/internal/repository"
	"pasar-warga/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Category     *CategoryHandler
	Listing      *ListingHandler
	Message      *MessageHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
	Upload       *UploadHandler
}

func NewHandlers(services *service.Services, repos *repository.Repositories) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Category:     NewCategoryHandler(repos.Category),
		Listing:      NewListingHandler(services.Listing),
		Message:      NewMessageHandler(services.Message),
		Review:       NewReviewHandler(services.Review),
		Notification: NewNotificationHandler(services.Notification),
		Upload:       NewUploadHandler(services.Upload),
	}
}
