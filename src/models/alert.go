package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertSubscription is created active and only ever soft-deleted.
type AlertSubscription struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	AssetID   string    `db:"asset_id"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// PriceAlertTarget is the 1:1 price target attached to a subscription.
type PriceAlertTarget struct {
	AlertID             int             `db:"alert_id"`
	TargetPrice         decimal.Decimal `db:"target_price"`
	ThresholdPercentage decimal.Decimal `db:"threshold_percentage"`
}

// ActiveAlert joins a subscription with its price target for matching.
type ActiveAlert struct {
	AlertSubscription
	Target PriceAlertTarget
}
