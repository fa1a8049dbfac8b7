package schemas

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceData is one observation as delivered by the market data feed.
type PriceData struct {
	AssetID      string          `json:"asset_id"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	ObservedAt   time.Time       `json:"observed_at"`
}
