package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pasar-warga/internal/domain"
	"pasar-warga/internal/middleware"
	"pasar-warga/internal/service"
)

type NotificationHandler struct {
	notifService service.NotificationService
}

func NewNotificationHandler(notifService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	notifications, err := h.notifService.List(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	notification, err := h.notifService.Create(c.Context(), userID, input)
	if err != nil {
		switch err {
		case service.ErrInvalidNotifType:
			return middleware.BadRequest("Unknown notification type")
		case service.ErrNotifTargetForbidden:
			return middleware.Forbidden("Cannot create notifications for another user")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(notification)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	var input domain.MarkNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	notification, err := h.notifService.MarkRead(c.Context(), userID, notifID, input.Read)
	if err != nil {
		if err == service.ErrNotificationNotFound {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(notification)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notifService.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}
