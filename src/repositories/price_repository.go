package repositories

import (
	"context"
	"fmt"

	"coinwatch/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PriceRepository stores price feed observations. The matching engine only
// ever reads the latest observation per asset.
type PriceRepository interface {
	Save(ctx context.Context, p *models.Price) error
	GetLatest(ctx context.Context, assetID string) (*models.Price, error)
	ListLatest(ctx context.Context) (map[string]models.Price, error)
}

type priceRepo struct {
	db *pgxpool.Pool
}

func NewPriceRepository(db *pgxpool.Pool) PriceRepository {
	return &priceRepo{db: db}
}

func (r *priceRepo) Save(ctx context.Context, p *models.Price) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO prices (asset_id, current_price, observed_at)
		VALUES ($1, $2, COALESCE($3, now()))
		RETURNING id, observed_at`,
		p.AssetID, p.CurrentPrice.String(), nullableTime(p.ObservedAt),
	).Scan(&p.ID, &p.ObservedAt)
}

func (r *priceRepo) GetLatest(ctx context.Context, assetID string) (*models.Price, error) {
	var p models.Price
	var priceStr string
	err := r.db.QueryRow(ctx,
		`SELECT id, asset_id, current_price, observed_at
		FROM prices WHERE asset_id = $1
		ORDER BY observed_at DESC, id DESC LIMIT 1`,
		assetID,
	).Scan(&p.ID, &p.AssetID, &priceStr, &p.ObservedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if p.CurrentPrice, err = decimal.NewFromString(priceStr); err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	return &p, nil
}

// ListLatest returns the most recent observation per asset.
func (r *priceRepo) ListLatest(ctx context.Context) (map[string]models.Price, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT ON (asset_id) id, asset_id, current_price, observed_at
		FROM prices
		ORDER BY asset_id, observed_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := make(map[string]models.Price)
	for rows.Next() {
		var p models.Price
		var priceStr string
		if err := rows.Scan(&p.ID, &p.AssetID, &priceStr, &p.ObservedAt); err != nil {
			return nil, err
		}
		if p.CurrentPrice, err = decimal.NewFromString(priceStr); err != nil {
			return nil, fmt.Errorf("parse price: %w", err)
		}
		latest[p.AssetID] = p
	}
	return latest, rows.Err()
}
