// Package testutil 提供测试用的 sqlite 内存库
package testutil

import (
	"testing"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB 打开一个已迁移的内存库.
// 只有一个连接, 所以并发事务会被串行化, 与生产环境的行锁效果一致.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.Tables()...))
	return db
}

// Seed 写入一个账户, 账户下的项目, 以及项目成员
func Seed(t *testing.T, db *gorm.DB, accountID, projectID, userID string, quota uint64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Account{ID: accountID, StorageQuotaBytes: quota}).Error)
	require.NoError(t, db.Create(&models.Project{ID: projectID, AccountID: accountID, Name: projectID}).Error)
	if userID != "" {
		require.NoError(t, db.Create(&models.ProjectMember{ProjectID: projectID, UserID: userID}).Error)
	}
}
