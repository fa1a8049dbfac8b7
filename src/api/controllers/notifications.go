package controllers

import (
	"context"

	"coinwatch/src/models"
	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
)

type NotificationController interface {
	ListUnreadNotifications(ctx context.Context, userID int) ([]schemas.NotificationResponse, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID int) (*schemas.NotificationResponse, error)
}

func (c *Controller) ListUnreadNotifications(ctx context.Context, userID int) ([]schemas.NotificationResponse, error) {
	notifications, err := c.Notifications.ListUnreadByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, *notificationResponse(&notifications[i]))
	}
	return responses, nil
}

func (c *Controller) MarkNotificationRead(ctx context.Context, userID, notificationID int) (*schemas.NotificationResponse, error) {
	existing, err := c.Notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	n, err := c.Notifications.MarkRead(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	return notificationResponse(n), nil
}

func notificationResponse(n *models.Notification) *schemas.NotificationResponse {
	return &schemas.NotificationResponse{
		ID:      n.ID,
		UserID:  n.UserID,
		AlertID: n.AlertID,
		Kind:    n.Kind,
		Body:    n.Body,
		SentAt:  n.SentAt,
		Read:    n.Read,
		ReadAt:  n.ReadAt,
	}
}
