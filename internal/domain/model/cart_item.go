package model

import "time"

// カートの明細
// 同じカートに同じ商品の行は1つだけ（数量で加算する）
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:idx_cart_product,priority:1" json:"cart_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_product,priority:2;index" json:"product_id"`
	Quantity  int64     `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
