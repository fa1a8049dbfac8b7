package schemas

import "time"

type NotificationResponse struct {
	ID      int        `json:"id"`
	UserID  int        `json:"user_id"`
	AlertID *int       `json:"alert_id,omitempty"`
	Kind    string     `json:"kind"`
	Body    string     `json:"body"`
	SentAt  time.Time  `json:"sent_at"`
	Read    bool       `json:"read"`
	ReadAt  *time.Time `json:"read_at,omitempty"`
}
