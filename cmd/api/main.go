package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"pasar-warga/internal/config"
	"pasar-warga/internal/handler"
	"pasar-warga/internal/middleware"
	"pasar-warga/internal/repository"
	"pasar-warga/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services, repos)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Get("/verify-email", h.Auth.VerifyEmail)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Post("/reset-password", h.Auth.ResetPassword)

	authRequired := middleware.AuthRequired(authService)

	// Browsing is public; everything that writes needs a session.
	// The "mine" route goes before ":id" so it is not read as an ID.
	v1.Get("/categories", h.Category.List)
	v1.Get("/listings", h.Listing.List)
	v1.Get("/listings/mine", authRequired, h.Listing.ListMine)
	v1.Get("/listings/:id", h.Listing.Get)

	protected := v1.Group("", authRequired)

	protected.Post("/auth/logout", h.Auth.Logout)

	listings := protected.Group("/listings")
	listings.Post("/", h.Listing.Create)
	listings.Patch("/:id/status", h.Listing.UpdateStatus)

	messages := protected.Group("/messages")
	messages.Post("/", h.Message.Send)
	messages.Get("/", h.Message.ListConversation)
	messages.Get("/threads", h.Message.ListThreads)

	reviews := protected.Group("/reviews")
	reviews.Post("/", h.Review.Create)
	reviews.Get("/", h.Review.List)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Post("/", h.Notification.Create)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:id", h.Notification.MarkRead)

	protected.Post("/uploads", h.Upload.Upload)

	users := protected.Group("/users")
	users.Get("/me", h.User.GetProfile)
	users.Put("/me", h.User.UpdateProfile)
}
