package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mannager/pos-system/internal/core/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ClearAll empties the notification feed.
//
// @Summary      Clear all notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusResponse
// @Router       /api/notifications [delete]
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	if err := h.service.ClearAll(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "All notifications cleared"})
}

// Delete removes a single notification.
//
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Notification id"
// @Success      200  {object}  statusResponse
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Notification deleted"})
}
