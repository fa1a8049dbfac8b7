package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is one (holder, asset) balance row. The holder is a user id in the
// portfolio store and a wallet id in the wallet balance store; both stores
// share the same mutation rules. Quantities never persist at or below zero.
type Holding struct {
	HolderID  int             `db:"holder_id"`
	AssetID   string          `db:"asset_id"`
	Quantity  decimal.Decimal `db:"quantity"`
	UpdatedAt time.Time       `db:"updated_at"`
}
