package models

import "time"

// Account 配额的聚合根, 对应 accounts 表
// 不变量: 任何提交后的修改都满足 StorageUsedBytes <= StorageQuotaBytes
type Account struct {
	ID                string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	StorageUsedBytes  uint64    `gorm:"not null;default:0" json:"storage_used_bytes"`
	StorageQuotaBytes uint64    `gorm:"not null;default:0" json:"storage_quota_bytes"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}
