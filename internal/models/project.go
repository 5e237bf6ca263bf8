package models

import "time"

// Project 文件归属的项目, 配额记在项目所属的账户上
type Project struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	AccountID string    `gorm:"type:varchar(36);not null;index" json:"account_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// Folder 项目内的文件夹
type Folder struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID string    `gorm:"type:varchar(36);not null;index" json:"project_id"`
	ParentID  *string   `gorm:"type:varchar(36);default:null" json:"parent_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Folder) TableName() string {
	return "folders"
}

// ProjectMember 项目成员关系, 用于访问校验
type ProjectMember struct {
	ProjectID string    `gorm:"type:varchar(36);primaryKey" json:"project_id"`
	UserID    string    `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
