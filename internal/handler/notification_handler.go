package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"growmate/internal/model"
	"growmate/internal/service"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	notifications service.NotificationService
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// NotificationRequest is a notification to create.
type NotificationRequest struct {
	UserID        string    `json:"userId"`
	Message       string    `json:"message" validate:"required"`
	ScheduledTime time.Time `json:"scheduledTime"`
}

// ListByUser godoc
// @Summary List a user's notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} model.Notification
// @Failure 403 {object} errors.ErrorResponse
// @Router /Notifications/{userId} [get]
func (h *NotificationHandler) ListByUser(c echo.Context) error {
	userID := c.Param("userId")
	if _, err := authorize(c, userID); err != nil {
		return err
	}
	notifications, err := h.notifications.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// CreateNotification godoc
// @Summary Create notification
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param notification body NotificationRequest true "Notification"
// @Success 201 {object} model.Notification
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /Notifications [post]
func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req NotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	owner := req.UserID
	if owner == "" {
		owner = actor.UserID
	}
	if _, err := authorize(c, owner); err != nil {
		return err
	}
	scheduled := req.ScheduledTime.UTC()
	if req.ScheduledTime.IsZero() {
		scheduled = time.Now().UTC()
	}

	n, err := h.notifications.Create(c.Request().Context(), &model.Notification{
		UserID:        owner,
		Message:       req.Message,
		ScheduledTime: scheduled,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, n)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} model.Notification
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /Notifications/{id} [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	n, err := h.notifications.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	if _, err := authorize(c, n.UserID); err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Request().Context(), n.ID); err != nil {
		return respondError(err)
	}
	n.IsRead = true
	return c.JSON(http.StatusOK, n)
}
