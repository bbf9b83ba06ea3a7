package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pasar-warga/internal/domain"
	"pasar-warga/internal/middleware"
	"pasar-warga/internal/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateReviewInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	review, err := h.reviewService.Create(c.Context(), userID, input)
	if err != nil {
		switch err {
		case service.ErrMissingReviewFields:
			return middleware.BadRequest("Missing required fields")
		case service.ErrInvalidRating:
			return middleware.BadRequest("Rating must be between 1 and 5")
		case service.ErrListingNotFound:
			return middleware.NotFound("Listing not found")
		case service.ErrListingNotSold:
			return middleware.BadRequest("Cannot review an unsold listing")
		case service.ErrNotReviewParticipant:
			return middleware.Unauthorized("Unauthorized to review this listing")
		case service.ErrAlreadyReviewed:
			return middleware.BadRequest("You have already reviewed this listing")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(review)
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	var filter domain.ReviewFilter

	if userStr := c.Query("userId"); userStr != "" {
		userID, err := uuid.Parse(userStr)
		if err != nil {
			return middleware.BadRequest("Invalid user ID")
		}
		filter.UserID = &userID
	}
	if listingStr := c.Query("listingId"); listingStr != "" {
		listingID, err := uuid.Parse(listingStr)
		if err != nil {
			return middleware.BadRequest("Invalid listing ID")
		}
		filter.ListingID = &listingID
	}

	reviews, err := h.reviewService.List(c.Context(), filter)
	if err != nil {
		if err == service.ErrMissingReviewFilter {
			return middleware.BadRequest("Missing required parameters")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(reviews)
}
