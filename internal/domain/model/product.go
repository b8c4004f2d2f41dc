package model

import "time"

// Priceは最小通貨単位
type Product struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Price      int64     `gorm:"not null" json:"price"`
	CategoryID int64     `gorm:"not null;index" json:"category_id"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
