package repositories

import (
	"context"

	"coinwatch/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository is the outbox. Entries are append-only; only the
// read flag ever changes, and nothing is deleted.
type NotificationRepository interface {
	Append(ctx context.Context, n *models.Notification, tx pgx.Tx) error
	GetByID(ctx context.Context, notificationID int) (*models.Notification, error)
	MarkRead(ctx context.Context, notificationID int) (*models.Notification, error)
	ListUnreadByUser(ctx context.Context, userID int) ([]models.Notification, error)
}

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Append(ctx context.Context, n *models.Notification, tx pgx.Tx) error {
	query := `
		INSERT INTO notifications (user_id, alert_id, kind, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sent_at, read`

	return withTx(ctx, r.db, tx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, n.UserID, n.AlertID, n.Kind, n.Body).
			Scan(&n.ID, &n.SentAt, &n.Read)
	})
}

func (r *notificationRepo) GetByID(ctx context.Context, notificationID int) (*models.Notification, error) {
	var n models.Notification
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, alert_id, kind, body, sent_at, read, read_at
		FROM notifications
		WHERE id = $1`,
		notificationID,
	).Scan(&n.ID, &n.UserID, &n.AlertID, &n.Kind, &n.Body, &n.SentAt, &n.Read, &n.ReadAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &n, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, notificationID int) (*models.Notification, error) {
	var n models.Notification
	err := r.db.QueryRow(ctx,
		`UPDATE notifications
		SET read = TRUE, read_at = COALESCE(read_at, now())
		WHERE id = $1
		RETURNING id, user_id, alert_id, kind, body, sent_at, read, read_at`,
		notificationID,
	).Scan(&n.ID, &n.UserID, &n.AlertID, &n.Kind, &n.Body, &n.SentAt, &n.Read, &n.ReadAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &n, nil
}

func (r *notificationRepo) ListUnreadByUser(ctx context.Context, userID int) ([]models.Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, alert_id, kind, body, sent_at, read, read_at
		FROM notifications
		WHERE user_id = $1 AND NOT read
		ORDER BY sent_at ASC, id ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.AlertID, &n.Kind, &n.Body, &n.SentAt, &n.Read, &n.ReadAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
