package controllers

import (
	"context"

	"coinwatch/src/models"
	"coinwatch/src/schemas"

	"github.com/google/uuid"
)

type WalletController interface {
	CreateWallet(ctx context.Context, userID int, req *schemas.WalletRequest) (*schemas.WalletResponse, error)
	ListWallets(ctx context.Context, userID int) ([]schemas.WalletResponse, error)
	GetWallet(ctx context.Context, walletID int) (*schemas.WalletResponse, error)
}

func (c *Controller) CreateWallet(ctx context.Context, userID int, req *schemas.WalletRequest) (*schemas.WalletResponse, error) {
	wallet := &models.Wallet{
		UserID:  userID,
		Name:    req.Name,
		Address: uuid.NewString(),
	}
	if err := c.Wallets.Create(ctx, wallet); err != nil {
		return nil, err
	}
	return walletResponse(wallet), nil
}

func (c *Controller) ListWallets(ctx context.Context, userID int) ([]schemas.WalletResponse, error) {
	wallets, err := c.Wallets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.WalletResponse, 0, len(wallets))
	for i := range wallets {
		responses = append(responses, *walletResponse(&wallets[i]))
	}
	return responses, nil
}

func (c *Controller) GetWallet(ctx context.Context, walletID int) (*schemas.WalletResponse, error) {
	wallet, err := c.Wallets.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	return walletResponse(wallet), nil
}

func walletResponse(w *models.Wallet) *schemas.WalletResponse {
	return &schemas.WalletResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
	}
}
