package kvledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/transfer"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/platform/persistence"
)

// failingKV injects storage errors for both reads and writes
type failingKV struct {
	err error
}

func (f *failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, f.err
}

func (f *failingKV) Set(context.Context, string, []byte) error {
	return f.err
}

func newTestTransaction(t *testing.T, name string, amount int64) *transfer.Transaction {
	t.Helper()
	tx, err := transfer.NewTransaction(name, decimal.NewFromInt(amount), "")
	require.NoError(t, err)
	return tx.Settled()
}

func TestLedgerRepository_Append(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	t.Run("NewestFirst", func(t *testing.T) {
		repo := NewLedgerRepository(logger, persistence.NewMemoryKV(), 10)

		first := newTestTransaction(t, "Alice", 100)
		second := newTestTransaction(t, "Bob", 200)
		require.NoError(t, repo.Append(ctx, first))
		require.NoError(t, repo.Append(ctx, second))

		history, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
		assert.Equal(t, first.ID, history[1].ID)
	})

	t.Run("TruncatesToCap", func(t *testing.T) {
		repo := NewLedgerRepository(logger, persistence.NewMemoryKV(), 10)

		var appended []*transfer.Transaction
		for i := 0; i < 15; i++ {
			tx := newTestTransaction(t, fmt.Sprintf("Recipient %d", i), int64(i+1))
			require.NoError(t, repo.Append(ctx, tx))
			appended = append(appended, tx)
		}

		history, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, history, 10)
		// Newest ten retained in order, oldest five dropped
		for i := 0; i < 10; i++ {
			assert.Equal(t, appended[14-i].ID, history[i].ID)
		}
	})

	t.Run("WriteFailureIsReported", func(t *testing.T) {
		repo := NewLedgerRepository(logger, &failingKV{err: errors.New("disk gone")}, 10)

		err := repo.Append(ctx, newTestTransaction(t, "Alice", 100))
		assert.Error(t, err)
	})
}

func TestLedgerRepository_Recent(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	repo := NewLedgerRepository(logger, persistence.NewMemoryKV(), 10)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, newTestTransaction(t, fmt.Sprintf("R%d", i), int64(i+1))))
	}

	t.Run("LimitsResults", func(t *testing.T) {
		recent, err := repo.Recent(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, recent, 3)
	})

	t.Run("LimitBeyondLength", func(t *testing.T) {
		recent, err := repo.Recent(ctx, 50)
		require.NoError(t, err)
		assert.Len(t, recent, 5)
	})

	t.Run("ReflectsCurrentState", func(t *testing.T) {
		before, err := repo.Recent(ctx, 1)
		require.NoError(t, err)

		newest := newTestTransaction(t, "Newest", 999)
		require.NoError(t, repo.Append(ctx, newest))

		after, err := repo.Recent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.Equal(t, newest.ID, after[0].ID)
		assert.NotEqual(t, before[0].ID, after[0].ID)
	})
}

func TestLedgerRepository_DegradesToEmpty(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	t.Run("MissingBlob", func(t *testing.T) {
		repo := NewLedgerRepository(logger, persistence.NewMemoryKV(), 10)

		history, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("CorruptBlob", func(t *testing.T) {
		kv := persistence.NewMemoryKV()
		require.NoError(t, kv.Set(ctx, StorageKey, []byte("{not json")))
		repo := NewLedgerRepository(logger, kv, 10)

		history, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("ReadFailure", func(t *testing.T) {
		repo := NewLedgerRepository(logger, &failingKV{err: errors.New("connection refused")}, 10)

		history, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("AppendRecoversFromCorruption", func(t *testing.T) {
		kv := persistence.NewMemoryKV()
		require.NoError(t, kv.Set(ctx, StorageKey, []byte("garbage")))
		repo := NewLedgerRepository(logger, kv, 10)

		tx := newTestTransaction(t, "Alice", 100)
		require.NoError(t, repo.Append(ctx, tx))

		history, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, tx.ID, history[0].ID)
	})
}
