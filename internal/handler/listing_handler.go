package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pasar-warga/internal/domain"
	"pasar-warga/internal/middleware"
	"pasar-warga/internal/service"
)

type ListingHandler struct {
	listingService service.ListingService
}

func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateListingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	listing, err := h.listingService.Create(c.Context(), userID, input)
	if err != nil {
		switch err {
		case service.ErrMissingListingFields:
			return middleware.BadRequest("Title, description, condition and category are required")
		case service.ErrInvalidItemCondition:
			return middleware.BadRequest("Invalid item condition")
		case service.ErrCategoryNotFound:
			return middleware.BadRequest("Unknown category")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

func (h *ListingHandler) List(c *fiber.Ctx) error {
	filter := domain.ListingFilter{
		Query:     c.Query("q"),
		Condition: domain.ItemCondition(c.Query("condition")),
		Sort:      domain.ListingSort(c.Query("sort")),
	}

	if categoryStr := c.Query("category"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			return middleware.BadRequest("Invalid category ID")
		}
		filter.CategoryID = &categoryID
	}

	listings, err := h.listingService.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(listings)
}

func (h *ListingHandler) Get(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid listing ID")
	}

	listing, err := h.listingService.GetByID(c.Context(), listingID)
	if err != nil {
		if err == service.ErrListingNotFound {
			return middleware.NotFound("Listing not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(listing)
}

func (h *ListingHandler) ListMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	listings, err := h.listingService.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(listings)
}

func (h *ListingHandler) UpdateStatus(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid listing ID")
	}

	var input struct {
		Status domain.ListingStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	listing, err := h.listingService.UpdateStatus(c.Context(), userID, listingID, input.Status)
	if err != nil {
		switch err {
		case service.ErrInvalidListingStatus:
			return middleware.BadRequest("Invalid listing status")
		case service.ErrListingNotFound:
			return middleware.NotFound("Listing not found")
		case service.ErrNotListingOwner:
			return middleware.Unauthorized("Only the owner may change this listing")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(listing)
}
