package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FileStatus 文件处理状态
type FileStatus string

const (
	StatusUploading        FileStatus = "uploading"
	StatusProcessing       FileStatus = "processing"
	StatusReady            FileStatus = "ready"
	StatusProcessingFailed FileStatus = "processing_failed"
	StatusDeleted          FileStatus = "deleted"
)

// AllStatuses 按声明顺序列出所有状态
var AllStatuses = []FileStatus{
	StatusUploading,
	StatusProcessing,
	StatusReady,
	StatusProcessingFailed,
	StatusDeleted,
}

// TechnicalMetadata 处理流水线回填的技术元数据, 例如 {duration, width, height}
// 以 JSON 文本形式存储
type TechnicalMetadata map[string]any

func (m TechnicalMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *TechnicalMetadata) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("technical metadata: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(raw, m)
}

// File 对应 files 表
// DeletedAt 是回收站标记, 与 Status=deleted 相互独立, 因此不使用 gorm.DeletedAt
type File struct {
	ID                 string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID          string            `gorm:"type:varchar(36);not null;index" json:"project_id"`
	FolderID           *string           `gorm:"type:varchar(36);default:null;index" json:"folder_id"` // 项目根目录为 null
	VersionStackID     *string           `gorm:"type:varchar(36);default:null" json:"version_stack_id"`
	Name               string            `gorm:"type:varchar(255);not null" json:"name"`
	OriginalName       string            `gorm:"type:varchar(255);not null" json:"original_name"`
	MimeType           string            `gorm:"type:varchar(128);not null" json:"mime_type"`
	FileSizeBytes      uint64            `gorm:"not null;default:0" json:"file_size_bytes"`
	Checksum           *string           `gorm:"type:varchar(128);default:null" json:"checksum"`
	Status             FileStatus        `gorm:"type:varchar(32);not null;index" json:"status"`
	CustomThumbnailKey *string           `gorm:"type:varchar(1024);default:null" json:"custom_thumbnail_key"`
	TechnicalMetadata  TechnicalMetadata `gorm:"type:text" json:"technical_metadata"`
	DeletedAt          *time.Time        `gorm:"default:null;index" json:"deleted_at"`
	ExpiresAt          *time.Time        `gorm:"default:null" json:"expires_at"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定 GORM 使用的表名
func (File) TableName() string {
	return "files"
}

// IsTrashed 文件是否在回收站中
func (f *File) IsTrashed() bool {
	return f.DeletedAt != nil
}

// MediaCategory 返回 mime 类型的主类别, 例如 "image/png" -> "image"
func (f *File) MediaCategory() string {
	category, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(f.MimeType)), "/")
	return category
}
