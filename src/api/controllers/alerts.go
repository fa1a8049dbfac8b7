package controllers

import (
	"context"

	"coinwatch/src/schemas"
)

type AlertController interface {
	CreateAlert(ctx context.Context, userID int, req *schemas.AlertRequest) (*schemas.AlertResponse, error)
	DeactivateAlert(ctx context.Context, userID, alertID int) (*schemas.AlertResponse, error)
	ListAlerts(ctx context.Context, userID int) ([]schemas.AlertResponse, error)
}

func (c *Controller) CreateAlert(ctx context.Context, userID int, req *schemas.AlertRequest) (*schemas.AlertResponse, error) {
	return c.Alerts.Subscribe(ctx, userID, req)
}

func (c *Controller) DeactivateAlert(ctx context.Context, userID, alertID int) (*schemas.AlertResponse, error) {
	return c.Alerts.Deactivate(ctx, userID, alertID)
}

func (c *Controller) ListAlerts(ctx context.Context, userID int) ([]schemas.AlertResponse, error) {
	return c.Alerts.ListSubscriptions(ctx, userID)
}
