package controllers

import (
	"context"

	"coinwatch/src/schemas"
)

type PriceController interface {
	GetLatestPrice(ctx context.Context, assetID string) (*schemas.PriceData, error)
}

func (c *Controller) GetLatestPrice(ctx context.Context, assetID string) (*schemas.PriceData, error) {
	return c.Prices.GetLatest(ctx, assetID)
}
