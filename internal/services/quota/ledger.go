// Package quota 维护账户的存储用量, 是整个核心里唯一需要串行化的资源
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var reservationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mediavault_quota_reservations_total",
	Help: "Quota reservation attempts by result.",
}, []string{"result"})

// Reservation 一次成功的预留. 随同文件行在同一事务中提交或回滚.
type Reservation struct {
	ID        string
	AccountID string
	Bytes     uint64
	CreatedAt time.Time
}

type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Reserve 在 tx 中为账户预留 delta 字节, tx 为 nil 时使用独立事务.
// 先锁住账户行, 再用带条件的 UPDATE 保证 used + delta <= quota.
func (l *Ledger) Reserve(ctx context.Context, tx *gorm.DB, accountID string, delta uint64) (*Reservation, error) {
	if tx == nil {
		var res *Reservation
		err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			res, err = l.Reserve(ctx, tx, accountID, delta)
			return err
		})
		return res, err
	}

	res, err := l.reserve(ctx, tx, accountID, delta)
	switch {
	case err == nil:
		reservationsTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, xerr.ErrQuotaExceeded):
		reservationsTotal.WithLabelValues("exceeded").Inc()
	default:
		reservationsTotal.WithLabelValues("error").Inc()
	}
	return res, err
}

func (l *Ledger) reserve(ctx context.Context, tx *gorm.DB, accountID string, delta uint64) (*Reservation, error) {
	var account models.Account
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", accountID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account %s: %w", accountID, xerr.ErrNotFound)
		}
		logger.Error("Reserve: Failed to lock account", zap.String("accountID", accountID), zap.Error(err))
		return nil, fmt.Errorf("quota: lock account: %w: %v", xerr.ErrDatabase, err)
	}

	if delta > account.StorageQuotaBytes {
		return nil, l.exceeded(account, delta)
	}

	if delta > 0 {
		result := tx.WithContext(ctx).Model(&models.Account{}).
			Where("id = ? AND storage_used_bytes + ? <= storage_quota_bytes", accountID, delta).
			Update("storage_used_bytes", gorm.Expr("storage_used_bytes + ?", delta))
		if result.Error != nil {
			logger.Error("Reserve: Failed to update usage", zap.String("accountID", accountID), zap.Error(result.Error))
			return nil, fmt.Errorf("quota: reserve: %w: %v", xerr.ErrDatabase, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, l.exceeded(account, delta)
		}
	}

	return &Reservation{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Bytes:     delta,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (l *Ledger) exceeded(account models.Account, delta uint64) error {
	logger.Info("Reserve: Quota exceeded",
		zap.String("accountID", account.ID),
		zap.Uint64("used", account.StorageUsedBytes),
		zap.Uint64("quota", account.StorageQuotaBytes),
		zap.Uint64("requested", delta))
	return fmt.Errorf("account %s: requested %d bytes, %d of %d used: %w",
		account.ID, delta, account.StorageUsedBytes, account.StorageQuotaBytes, xerr.ErrQuotaExceeded)
}

// Release 归还 delta 字节, 用量最低为 0. tx 为 nil 时直接执行.
func (l *Ledger) Release(ctx context.Context, tx *gorm.DB, accountID string, delta uint64) error {
	if delta == 0 {
		return nil
	}
	if tx == nil {
		tx = l.db
	}
	err := tx.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("storage_used_bytes", gorm.Expr(
			"CASE WHEN storage_used_bytes >= ? THEN storage_used_bytes - ? ELSE 0 END", delta, delta)).Error
	if err != nil {
		logger.Error("Release: Failed to release quota", zap.String("accountID", accountID), zap.Uint64("bytes", delta), zap.Error(err))
		return fmt.Errorf("quota: release: %w: %v", xerr.ErrDatabase, err)
	}
	return nil
}

// Usage 返回账户当前的用量与配额
func (l *Ledger) Usage(ctx context.Context, accountID string) (*models.Account, error) {
	var account models.Account
	err := l.db.WithContext(ctx).Where("id = ?", accountID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account %s: %w", accountID, xerr.ErrNotFound)
		}
		return nil, fmt.Errorf("quota: usage: %w: %v", xerr.ErrDatabase, err)
	}
	return &account, nil
}
