package schemas

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingView is one balance row enriched with the latest observed price
// when one is known.
type HoldingView struct {
	AssetID   string           `json:"asset_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Value     *decimal.Decimal `json:"value,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type PortfolioResponse struct {
	UserID   int           `json:"user_id"`
	Holdings []HoldingView `json:"holdings"`
}

type WalletBalancesResponse struct {
	WalletID int           `json:"wallet_id"`
	Holdings []HoldingView `json:"holdings"`
}
