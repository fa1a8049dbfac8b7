package schemas

import (
	"time"

	"github.com/shopspring/decimal"
)

type AlertRequest struct {
	AssetID             string          `json:"asset_id"`
	TargetPrice         decimal.Decimal `json:"target_price"`
	ThresholdPercentage decimal.Decimal `json:"threshold_percentage"`
}

type AlertResponse struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	AssetID   string    `json:"asset_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
