package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger record. Position is signed: positive is
// an acquisition, negative a disposal. Only successful transactions affect
// balances; failed ones are kept for audit.
type Transaction struct {
	ID           int             `db:"id"`
	UserID       int             `db:"user_id"`
	WalletID     int             `db:"wallet_id"`
	SourceAsset  string          `db:"source_asset"`
	TargetAsset  string          `db:"target_asset"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	Position     decimal.Decimal `db:"position"`
	Network      string          `db:"network"`
	Fee          decimal.Decimal `db:"fee"`
	Success      bool            `db:"success"`
	Timestamp    time.Time       `db:"time_transaction"`
}
