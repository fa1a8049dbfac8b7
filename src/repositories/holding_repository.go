package repositories

import (
	"context"
	"fmt"
	"time"

	"coinwatch/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// DeltaResult reports the outcome of an ApplyDelta call. Holding is nil when
// the row was removed; Quantity carries the arithmetic result either way, so
// callers can tell a full disposal (zero) from an overdraft (negative).
type DeltaResult struct {
	Holding  *models.Holding
	Quantity decimal.Decimal
}

// HoldingRepository is the balance store contract shared by the portfolio
// table (holder = user) and the wallet balance table (holder = wallet).
type HoldingRepository interface {
	Get(ctx context.Context, holderID int, assetID string) (*models.Holding, error)
	ListByHolder(ctx context.Context, holderID int) ([]models.Holding, error)
	// ApplyDelta adds delta to the current quantity (zero when absent).
	// A positive result is upserted; a result of zero or below deletes the
	// row. The write is atomic and serializes against concurrent deltas on
	// the same (holder, asset) via the row lock held until the surrounding
	// transaction commits.
	ApplyDelta(ctx context.Context, holderID int, assetID string, delta decimal.Decimal, tx pgx.Tx) (DeltaResult, error)
}

type holdingRepo struct {
	db    *pgxpool.Pool
	table string
}

// NewPortfolioRepository returns the balance store for user-level holdings.
func NewPortfolioRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db, table: "portfolio_holdings"}
}

// NewWalletBalanceRepository returns the balance store for wallet-level
// holdings.
func NewWalletBalanceRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db, table: "wallet_holdings"}
}

func (r *holdingRepo) Get(ctx context.Context, holderID int, assetID string) (*models.Holding, error) {
	query := fmt.Sprintf(
		`SELECT holder_id, asset_id, quantity, updated_at FROM %s WHERE holder_id = $1 AND asset_id = $2`,
		r.table)

	var h models.Holding
	var quantityStr string
	err := r.db.QueryRow(ctx, query, holderID, assetID).
		Scan(&h.HolderID, &h.AssetID, &quantityStr, &h.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	h.Quantity, err = decimal.NewFromString(quantityStr)
	if err != nil {
		return nil, fmt.Errorf("parse quantity: %w", err)
	}
	return &h, nil
}

func (r *holdingRepo) ListByHolder(ctx context.Context, holderID int) ([]models.Holding, error) {
	query := fmt.Sprintf(
		`SELECT holder_id, asset_id, quantity, updated_at FROM %s WHERE holder_id = $1 ORDER BY asset_id`,
		r.table)

	rows, err := r.db.Query(ctx, query, holderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		var quantityStr string
		if err := rows.Scan(&h.HolderID, &h.AssetID, &quantityStr, &h.UpdatedAt); err != nil {
			return nil, err
		}
		h.Quantity, err = decimal.NewFromString(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("parse quantity: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *holdingRepo) ApplyDelta(ctx context.Context, holderID int, assetID string, delta decimal.Decimal, tx pgx.Tx) (DeltaResult, error) {
	// The additive upsert applies the delta against the committed quantity
	// regardless of interleaving; two concurrent deltas on the same row
	// queue on the row lock instead of overwriting each other.
	upsert := fmt.Sprintf(`
		INSERT INTO %s (holder_id, asset_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (holder_id, asset_id) DO UPDATE SET
			quantity = %s.quantity + EXCLUDED.quantity,
			updated_at = now()
		RETURNING quantity, updated_at`, r.table, r.table)
	del := fmt.Sprintf(`DELETE FROM %s WHERE holder_id = $1 AND asset_id = $2`, r.table)

	var result DeltaResult
	err := withTx(ctx, r.db, tx, func(tx pgx.Tx) error {
		var quantityStr string
		var updatedAt time.Time
		if err := tx.QueryRow(ctx, upsert, holderID, assetID, delta.String()).
			Scan(&quantityStr, &updatedAt); err != nil {
			return err
		}

		quantity, err := decimal.NewFromString(quantityStr)
		if err != nil {
			return fmt.Errorf("parse quantity: %w", err)
		}
		result.Quantity = quantity

		if quantity.Sign() <= 0 {
			// Non-positive balances are removed, not retained.
			if _, err := tx.Exec(ctx, del, holderID, assetID); err != nil {
				return err
			}
			result.Holding = nil
			return nil
		}

		result.Holding = &models.Holding{
			HolderID:  holderID,
			AssetID:   assetID,
			Quantity:  quantity,
			UpdatedAt: updatedAt,
		}
		return nil
	})
	if err != nil {
		return DeltaResult{}, err
	}
	return result, nil
}
