package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pasar-warga/internal/domain"
	"pasar-warga/internal/middleware"
	"pasar-warga/internal/service"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	message, err := h.messageService.Send(c.Context(), userID, input)
	if err != nil {
		switch err {
		case service.ErrMissingMessageFields:
			return middleware.BadRequest("Missing required fields")
		case service.ErrSelfMessage:
			return middleware.BadRequest("Cannot send a message to yourself")
		case service.ErrListingNotFound:
			return middleware.NotFound("Listing not found")
		case service.ErrRecipientNotFound:
			return middleware.NotFound("Recipient not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(message)
}

func (h *MessageHandler) ListConversation(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	listingStr := c.Query("listingId")
	otherUserStr := c.Query("userId")
	if listingStr == "" || otherUserStr == "" {
		return middleware.BadRequest("Missing required parameters")
	}

	listingID, err := uuid.Parse(listingStr)
	if err != nil {
		return middleware.BadRequest("Invalid listing ID")
	}
	otherUserID, err := uuid.Parse(otherUserStr)
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	messages, err := h.messageService.ListConversation(c.Context(), userID, listingID, otherUserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(messages)
}

func (h *MessageHandler) ListThreads(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	threads, err := h.messageService.ListThreads(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(threads)
}
