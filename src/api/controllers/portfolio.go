package controllers

import (
	"context"

	"coinwatch/src/schemas"
)

type PortfolioController interface {
	GetPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error)
	GetWalletBalances(ctx context.Context, walletID int) (*schemas.WalletBalancesResponse, error)
}

func (c *Controller) GetPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error) {
	return c.Portfolio.GetPortfolio(ctx, userID)
}

func (c *Controller) GetWalletBalances(ctx context.Context, walletID int) (*schemas.WalletBalancesResponse, error) {
	return c.Portfolio.GetWalletBalances(ctx, walletID)
}
