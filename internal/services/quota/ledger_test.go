package quota

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/3Eeeecho/go-mediavault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReserveFitsPrefix(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.Seed(t, db, "acc", "p1", "", 1000)
	ledger := NewLedger(db)
	ctx := context.Background()

	tests := []struct {
		delta  uint64
		wantOK bool
	}{
		{300, true},
		{500, true},
		{300, false},
		{200, true},
		{1, false},
		{0, true},
	}
	for _, tt := range tests {
		res, err := ledger.Reserve(ctx, nil, "acc", tt.delta)
		if tt.wantOK {
			require.NoError(t, err, "delta %d", tt.delta)
			assert.Equal(t, tt.delta, res.Bytes)
			assert.NotEmpty(t, res.ID)
		} else {
			assert.ErrorIs(t, err, xerr.ErrQuotaExceeded, "delta %d", tt.delta)
		}
	}

	account, err := ledger.Usage(ctx, "acc")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), account.StorageUsedBytes)
}

func TestReserveUnknownAccount(t *testing.T) {
	ledger := NewLedger(testutil.OpenDB(t))
	_, err := ledger.Reserve(context.Background(), nil, "ghost", 1)
	assert.ErrorIs(t, err, xerr.ErrNotFound)
}

func TestReserveLargerThanQuota(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.Seed(t, db, "acc", "p1", "", 10)
	_, err := NewLedger(db).Reserve(context.Background(), nil, "acc", ^uint64(0))
	assert.ErrorIs(t, err, xerr.ErrQuotaExceeded)
}

func TestConcurrentReservationsNeverExceedQuota(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.Seed(t, db, "acc", "p1", "", 1000)
	ledger := NewLedger(db)
	ctx := context.Background()

	var ok, exceeded atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Reserve(ctx, nil, "acc", 100)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, xerr.ErrQuotaExceeded):
				exceeded.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), ok.Load())
	assert.Equal(t, int32(10), exceeded.Load())
	account, err := ledger.Usage(ctx, "acc")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), account.StorageUsedBytes)
}

func TestReservationRollsBackWithTransaction(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.Seed(t, db, "acc", "p1", "", 1000)
	ledger := NewLedger(db)
	ctx := context.Background()

	boom := errors.New("row insert failed")
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := ledger.Reserve(ctx, tx, "acc", 400); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	account, err := ledger.Usage(ctx, "acc")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), account.StorageUsedBytes)
}

func TestReleaseFloorsAtZero(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.Seed(t, db, "acc", "p1", "", 1000)
	ledger := NewLedger(db)
	ctx := context.Background()

	_, err := ledger.Reserve(ctx, nil, "acc", 300)
	require.NoError(t, err)
	require.NoError(t, ledger.Release(ctx, nil, "acc", 100))

	account, err := ledger.Usage(ctx, "acc")
	require.NoError(t, err)
	assert.Equal(t, uint64(200), account.StorageUsedBytes)

	require.NoError(t, ledger.Release(ctx, nil, "acc", 5000))
	account, err = ledger.Usage(ctx, "acc")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), account.StorageUsedBytes)
}
