package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coinwatch/src/config"
	"coinwatch/src/schemas"
	"coinwatch/src/utils"
	"coinwatch/src/utils/requests"

	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// marketEntry mirrors the fields we read from the /coins/markets payload.
type marketEntry struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
	LastUpdated  string  `json:"last_updated"`
}

type CoinGeckoServiceClient struct {
	api        *requests.ExternalAPIService
	baseURL    string
	vsCurrency string
	catalogue  *utils.Cache[map[string]string]
}

func NewClient(cfg *config.Config) *CoinGeckoServiceClient {
	baseURL := cfg.ExternalClients.CoinGecko.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &CoinGeckoServiceClient{
		api:        requests.NewExternalAPIService(10 * time.Second),
		baseURL:    strings.TrimRight(baseURL, "/"),
		vsCurrency: cfg.ExternalClients.CoinGecko.VsCurrency,
		catalogue:  utils.NewCache[map[string]string](),
	}
}

// FetchPrices returns one observation per requested asset id. Transient
// upstream failures are retried with bounded attempts; the retry policy
// lives here, not in the engine that consumes the prices.
func (c *CoinGeckoServiceClient) FetchPrices(ctx context.Context, assetIDs []string) ([]schemas.PriceData, error) {
	if len(assetIDs) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("vs_currency", c.vsCurrency)
	params.Set("ids", strings.Join(assetIDs, ","))

	var entries []marketEntry
	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.api.Get(ctx, c.baseURL+"/coins/markets", "", params)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("coingecko returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("coingecko returned status %d", resp.StatusCode)
		}
		entries = entries[:0]
		return json.NewDecoder(resp.Body).Decode(&entries)
	})
	if err != nil {
		return nil, err
	}

	observed := time.Now().UTC()
	prices := make([]schemas.PriceData, 0, len(entries))
	for _, entry := range entries {
		prices = append(prices, schemas.PriceData{
			AssetID:      entry.ID,
			CurrentPrice: decimal.NewFromFloat(entry.CurrentPrice),
			ObservedAt:   observed,
		})
	}
	return prices, nil
}

// ListCoins returns the id -> symbol catalogue, cached for an hour since it
// changes rarely and the endpoint is rate limited.
func (c *CoinGeckoServiceClient) ListCoins(ctx context.Context) (map[string]string, error) {
	if cached, ok := c.catalogue.Get(); ok {
		return cached, nil
	}

	resp, err := c.api.Get(ctx, c.baseURL+"/coins/list", "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	var coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&coins); err != nil {
		return nil, err
	}

	catalogue := make(map[string]string, len(coins))
	for _, coin := range coins {
		catalogue[coin.ID] = coin.Symbol
	}
	c.catalogue.Set(catalogue, time.Hour)
	return catalogue, nil
}
