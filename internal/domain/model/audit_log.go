package model

import "time"

// 管理APIの操作
type AuditAction string

const (
	AuditActionCreateCategory AuditAction = "CREATE_CATEGORY"
	AuditActionCreateProduct  AuditAction = "CREATE_PRODUCT"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceCategory AuditResourceType = "category"
	AuditResourceProduct  AuditResourceType = "product"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どうしたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//管理トークンのsubject
	Actor string `gorm:"type:varchar(150);not null;index" json:"actor"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//作成後の値（JSON文字列）
	AfterJSON string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
