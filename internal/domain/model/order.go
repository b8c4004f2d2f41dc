package model

import "time"

type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64       `gorm:"not null;index" json:"user_id"`
	TotalPrice int64       `gorm:"not null" json:"total_price"`
	CreatedAt  time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	Items      []OrderItem `gorm:"-" json:"items"`
}
