package models

import "time"

type User struct {
	ID             uint      `gorm:"primaryKey;column:id"`
	Username       string    `gorm:"column:username;uniqueIndex"`
	Email          string    `gorm:"column:email;uniqueIndex"`
	HashedPassword string    `gorm:"column:hashed_password"`
	Role           string    `gorm:"column:role;default:user"`
	Deactivated    bool      `gorm:"column:deactivated"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	LastActiveAt   time.Time `gorm:"column:last_active_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
