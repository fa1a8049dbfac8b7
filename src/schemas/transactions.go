package schemas

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest is the inbound transfer record. Success is decided by
// the external settlement process before it reaches us.
type TransactionRequest struct {
	WalletID     int             `json:"wallet_id"`
	SourceAsset  string          `json:"source_asset"`
	TargetAsset  string          `json:"target_asset"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Position     decimal.Decimal `json:"position"`
	Network      string          `json:"network"`
	Fee          decimal.Decimal `json:"fee"`
	Success      bool            `json:"success"`
}

type TransactionResponse struct {
	ID           int             `json:"id"`
	UserID       int             `json:"user_id"`
	WalletID     int             `json:"wallet_id"`
	SourceAsset  string          `json:"source_asset"`
	TargetAsset  string          `json:"target_asset"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Position     decimal.Decimal `json:"position"`
	Network      string          `json:"network"`
	Fee          decimal.Decimal `json:"fee"`
	Success      bool            `json:"success"`
	Timestamp    time.Time       `json:"timestamp"`
}
