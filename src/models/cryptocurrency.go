package models

import "time"

type Cryptocurrency struct {
	ID          string    `db:"id"`
	Symbol      string    `db:"symbol"`
	Name        string    `db:"name"`
	ImageURL    string    `db:"image_url"`
	LastUpdated time.Time `db:"last_updated"`
}
