package services

import (
	"context"
	"fmt"
	"time"

	"coinwatch/src/models"
	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
	"coinwatch/src/utils"
	redis_utils "coinwatch/src/utils/redis"
)

// PriceFeed is the market data collaborator; the engine consumes its
// observations but does not implement it.
type PriceFeed interface {
	FetchPrices(ctx context.Context, assetIDs []string) ([]schemas.PriceData, error)
}

type PriceServiceI interface {
	RefreshPrices(ctx context.Context) (int, error)
	GetLatest(ctx context.Context, assetID string) (*schemas.PriceData, error)
}

// PriceService pulls fresh observations from the feed for every asset with
// an active alert subscription, persists them, and mirrors the latest value
// into redis for cheap reads.
type PriceService struct {
	feed   PriceFeed
	prices repositories.PriceRepository
	alerts repositories.AlertRepository
	cache  *redis_utils.RedisHandler
}

// NewPriceService wires the feed and stores; cache may be nil when redis is
// not configured.
func NewPriceService(
	feed PriceFeed,
	prices repositories.PriceRepository,
	alerts repositories.AlertRepository,
	cache *redis_utils.RedisHandler,
) *PriceService {
	return &PriceService{feed: feed, prices: prices, alerts: alerts, cache: cache}
}

func (s *PriceService) RefreshPrices(ctx context.Context) (int, error) {
	logger := utils.LoggerFromContext(ctx)

	active, err := s.alerts.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active alerts: %w", err)
	}

	seen := make(map[string]bool)
	var assetIDs []string
	for _, alert := range active {
		if !seen[alert.AssetID] {
			seen[alert.AssetID] = true
			assetIDs = append(assetIDs, alert.AssetID)
		}
	}
	if len(assetIDs) == 0 {
		return 0, nil
	}

	observations, err := s.feed.FetchPrices(ctx, assetIDs)
	if err != nil {
		return 0, fmt.Errorf("fetch prices: %w", err)
	}

	saved := 0
	for _, obs := range observations {
		price := &models.Price{
			AssetID:      obs.AssetID,
			CurrentPrice: obs.CurrentPrice,
			ObservedAt:   obs.ObservedAt,
		}
		if err := s.prices.Save(ctx, price); err != nil {
			return saved, fmt.Errorf("save price for %s: %w", obs.AssetID, err)
		}
		saved++

		if s.cache != nil {
			if err := s.cache.Set(ctx, priceCacheKey(obs.AssetID), obs, 10*time.Minute); err != nil {
				logger.WithField("asset", obs.AssetID).WithError(err).Warn("failed to cache price")
			}
		}
	}
	return saved, nil
}

func (s *PriceService) GetLatest(ctx context.Context, assetID string) (*schemas.PriceData, error) {
	if s.cache != nil {
		var cached schemas.PriceData
		if err := s.cache.Get(ctx, priceCacheKey(assetID), &cached); err == nil {
			return &cached, nil
		}
	}

	price, err := s.prices.GetLatest(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return &schemas.PriceData{
		AssetID:      price.AssetID,
		CurrentPrice: price.CurrentPrice,
		ObservedAt:   price.ObservedAt,
	}, nil
}

func priceCacheKey(assetID string) string {
	return "price:latest:" + assetID
}
