package schemas

import "time"

type WalletRequest struct {
	Name string `json:"name"`
}

type WalletResponse struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
