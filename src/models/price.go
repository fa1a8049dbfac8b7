package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is one observation from the market data feed.
type Price struct {
	ID           int             `db:"id"`
	AssetID      string          `db:"asset_id"`
	CurrentPrice decimal.Decimal `db:"current_price"`
	ObservedAt   time.Time       `db:"observed_at"`
}
