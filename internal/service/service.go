package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"pasar-warga/internal/config"
	"pasar-warga/internal/repository"
)

type Services struct {
	Auth         AuthService
	User         UserService
	Listing      ListingService
	Message      MessageService
	Review       ReviewService
	Notification NotificationService
	Upload       UploadService
	Email        EmailService
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := NewEmailService(cfg)
	authService := NewAuthService(repos.User, repos.Session, emailService, cfg)
	notificationService := NewNotificationService(repos.Notification, repos.User, repos.Listing)
	listingService := NewListingService(repos.Listing, repos.Category, notificationService, redis)
	messageService := NewMessageService(repos.Message, repos.Listing, repos.User, notificationService)
	reviewService := NewReviewService(repos.Review, repos.Listing, notificationService)
	uploadService := NewUploadService(minioClient, cfg)
	userService := NewUserService(repos.User)

	return &Services{
		Auth:         authService,
		User:         userService,
		Listing:      listingService,
		Message:      messageService,
		Review:       reviewService,
		Notification: notificationService,
		Upload:       uploadService,
		Email:        emailService,
	}
}
