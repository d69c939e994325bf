package notification

import (
	"github.com/edupanel/campus-api/handlers"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification feed requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.notifications.List(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}

	responses := make([]model.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, notifications[i].ToResponse())
	}

	return response.Success(c, responses)
}

// ByStudent handles GET /notifications/student/:id
func (h *NotificationHandler) ByStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	notifications, err := h.notifications.ListByStudent(c.Context(), uint(id))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	responses := make([]model.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, notifications[i].ToResponse())
	}

	return response.Success(c, responses)
}

// MarkRead handles PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification id")
	}

	if err := h.notifications.MarkRead(c.Context(), uint(id)); err != nil {
		return handlers.RespondError(c, err)
	}

	return response.SuccessWithMessage(c, "Notification marked as read", nil)
}
