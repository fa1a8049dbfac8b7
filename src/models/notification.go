package models

import "time"

const (
	NotificationKindTransaction = "transaction"
	NotificationKindPriceAlert  = "price_alert"
)

// Notification is an outbox entry. Only the read flag ever changes after
// creation.
type Notification struct {
	ID      int        `db:"id"`
	UserID  int        `db:"user_id"`
	AlertID *int       `db:"alert_id"`
	Kind    string     `db:"kind"`
	Body    string     `db:"body"`
	SentAt  time.Time  `db:"sent_at"`
	Read    bool       `db:"read"`
	ReadAt  *time.Time `db:"read_at"`
}
