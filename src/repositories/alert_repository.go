package repositories

import (
	"context"
	"fmt"

	"coinwatch/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AlertRepository manages alert subscriptions and their price targets.
// Subscriptions are soft-deleted only; deactivated rows stay for audit.
type AlertRepository interface {
	Create(ctx context.Context, sub *models.AlertSubscription, target *models.PriceAlertTarget) error
	GetByID(ctx context.Context, alertID int) (*models.AlertSubscription, error)
	Deactivate(ctx context.Context, alertID int) (*models.AlertSubscription, error)
	ListActiveByUser(ctx context.Context, userID int) ([]models.AlertSubscription, error)
	ListActive(ctx context.Context) ([]models.ActiveAlert, error)
}

type alertRepo struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) AlertRepository {
	return &alertRepo{db: db}
}

// Create persists a subscription and its price target as one unit. A zero or
// negative target price is a configuration error and is rejected here so the
// matching cycle never has to deal with it.
func (r *alertRepo) Create(ctx context.Context, sub *models.AlertSubscription, target *models.PriceAlertTarget) error {
	if target.TargetPrice.Sign() <= 0 {
		return fmt.Errorf("%w: target price must be positive, got %s", ErrInvalidInput, target.TargetPrice)
	}

	return withTx(ctx, r.db, nil, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO alert_subscriptions (user_id, asset_id, active)
			VALUES ($1, $2, TRUE)
			RETURNING id, active, created_at`,
			sub.UserID, sub.AssetID,
		).Scan(&sub.ID, &sub.Active, &sub.CreatedAt)
		if err != nil {
			return err
		}

		target.AlertID = sub.ID
		_, err = tx.Exec(ctx,
			`INSERT INTO price_alert_targets (alert_id, target_price, threshold_percentage)
			VALUES ($1, $2, $3)`,
			target.AlertID, target.TargetPrice.String(), target.ThresholdPercentage.String())
		return err
	})
}

func (r *alertRepo) GetByID(ctx context.Context, alertID int) (*models.AlertSubscription, error) {
	var sub models.AlertSubscription
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, asset_id, active, created_at
		FROM alert_subscriptions WHERE id = $1`,
		alertID,
	).Scan(&sub.ID, &sub.UserID, &sub.AssetID, &sub.Active, &sub.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &sub, nil
}

// Deactivate soft-deletes a subscription. Deactivating an already-inactive
// subscription succeeds and returns the unchanged row.
func (r *alertRepo) Deactivate(ctx context.Context, alertID int) (*models.AlertSubscription, error) {
	var sub models.AlertSubscription
	err := r.db.QueryRow(ctx,
		`UPDATE alert_subscriptions SET active = FALSE
		WHERE id = $1
		RETURNING id, user_id, asset_id, active, created_at`,
		alertID,
	).Scan(&sub.ID, &sub.UserID, &sub.AssetID, &sub.Active, &sub.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &sub, nil
}

func (r *alertRepo) ListActiveByUser(ctx context.Context, userID int) ([]models.AlertSubscription, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, asset_id, active, created_at
		FROM alert_subscriptions
		WHERE user_id = $1 AND active ORDER BY created_at ASC, id ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.AlertSubscription
	for rows.Next() {
		var sub models.AlertSubscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.AssetID, &sub.Active, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// ListActive returns every active subscription joined with its price target,
// the working set for one matching pass.
func (r *alertRepo) ListActive(ctx context.Context) ([]models.ActiveAlert, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.user_id, s.asset_id, s.active, s.created_at, t.target_price, t.threshold_percentage
		FROM alert_subscriptions s
		JOIN price_alert_targets t ON t.alert_id = s.id
		WHERE s.active ORDER BY s.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.ActiveAlert
	for rows.Next() {
		var a models.ActiveAlert
		var targetStr, thresholdStr string
		if err := rows.Scan(&a.ID, &a.UserID, &a.AssetID, &a.Active, &a.CreatedAt, &targetStr, &thresholdStr); err != nil {
			return nil, err
		}
		a.Target.AlertID = a.ID
		if a.Target.TargetPrice, err = decimal.NewFromString(targetStr); err != nil {
			return nil, fmt.Errorf("parse target price: %w", err)
		}
		if a.Target.ThresholdPercentage, err = decimal.NewFromString(thresholdStr); err != nil {
			return nil, fmt.Errorf("parse threshold percentage: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
