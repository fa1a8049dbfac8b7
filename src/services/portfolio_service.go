package services

import (
	"context"

	"coinwatch/src/models"
	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
)

type PortfolioServiceI interface {
	GetPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error)
	GetWalletBalances(ctx context.Context, walletID int) (*schemas.WalletBalancesResponse, error)
}

// PortfolioService exposes read-only holding snapshots for display,
// valued against the latest observed prices.
type PortfolioService struct {
	portfolio      repositories.HoldingRepository
	walletBalances repositories.HoldingRepository
	prices         repositories.PriceRepository
}

func NewPortfolioService(
	portfolio repositories.HoldingRepository,
	walletBalances repositories.HoldingRepository,
	prices repositories.PriceRepository,
) *PortfolioService {
	return &PortfolioService{
		portfolio:      portfolio,
		walletBalances: walletBalances,
		prices:         prices,
	}
}

func (s *PortfolioService) GetPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error) {
	holdings, err := s.portfolio.ListByHolder(ctx, userID)
	if err != nil {
		return nil, err
	}
	views, err := s.buildViews(ctx, holdings)
	if err != nil {
		return nil, err
	}
	return &schemas.PortfolioResponse{UserID: userID, Holdings: views}, nil
}

func (s *PortfolioService) GetWalletBalances(ctx context.Context, walletID int) (*schemas.WalletBalancesResponse, error) {
	holdings, err := s.walletBalances.ListByHolder(ctx, walletID)
	if err != nil {
		return nil, err
	}
	views, err := s.buildViews(ctx, holdings)
	if err != nil {
		return nil, err
	}
	return &schemas.WalletBalancesResponse{WalletID: walletID, Holdings: views}, nil
}

func (s *PortfolioService) buildViews(ctx context.Context, holdings []models.Holding) ([]schemas.HoldingView, error) {
	latest, err := s.prices.ListLatest(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]schemas.HoldingView, 0, len(holdings))
	for _, h := range holdings {
		view := schemas.HoldingView{
			AssetID:   h.AssetID,
			Quantity:  h.Quantity,
			UpdatedAt: h.UpdatedAt,
		}
		if price, ok := latest[h.AssetID]; ok {
			p := price.CurrentPrice
			value := h.Quantity.Mul(p)
			view.Price = &p
			view.Value = &value
		}
		views = append(views, view)
	}
	return views, nil
}
