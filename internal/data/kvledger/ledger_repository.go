// Package kvledger implements the ledger repository on an opaque key-value
// blob store. The whole history lives in one JSON array, newest first,
// truncated to the configured cap on every append.
package kvledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/ledger"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/transfer"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/platform/persistence"
)

// StorageKey is the fixed key holding the serialized history blob.
const StorageKey = "transactions"

// LedgerRepository implements the ledger.Repository interface over a KVStore
type LedgerRepository struct {
	kv         persistence.KVStore
	logger     *slog.Logger
	maxEntries int
}

// NewLedgerRepository creates a ledger repository with the given cap.
// A cap <= 0 falls back to ledger.MaxEntries.
func NewLedgerRepository(logger *slog.Logger, kv persistence.KVStore, maxEntries int) ledger.Repository {
	if maxEntries <= 0 {
		maxEntries = ledger.MaxEntries
	}
	return &LedgerRepository{
		kv:         kv,
		logger:     logger,
		maxEntries: maxEntries,
	}
}

// Append inserts the transaction at the head of the history and truncates to
// the cap. Unlike reads, a failed write is reported: the caller treats
// settlement and persistence as one atomic step.
func (r *LedgerRepository) Append(ctx context.Context, tx *transfer.Transaction) error {
	history := r.load(ctx)

	history = append([]*transfer.Transaction{tx}, history...)
	if len(history) > r.maxEntries {
		history = history[:r.maxEntries]
	}

	blob, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to serialize transaction history: %w", err)
	}

	if err := r.kv.Set(ctx, StorageKey, blob); err != nil {
		r.logger.Error("Failed to persist transaction history",
			"transaction_id", tx.ID,
			"error", err)
		return fmt.Errorf("failed to persist transaction history: %w", err)
	}

	return nil
}

// Recent returns up to n transactions, newest first.
func (r *LedgerRepository) Recent(ctx context.Context, n int) ([]*transfer.Transaction, error) {
	if n <= 0 {
		return nil, nil
	}
	history := r.load(ctx)
	if n < len(history) {
		history = history[:n]
	}
	return history, nil
}

// LoadAll returns the entire bounded history, newest first.
func (r *LedgerRepository) LoadAll(ctx context.Context) ([]*transfer.Transaction, error) {
	return r.load(ctx), nil
}

// load reads and decodes the history blob. Missing or corrupt data degrades
// to an empty history: the ledger is advisory, not authoritative.
func (r *LedgerRepository) load(ctx context.Context) []*transfer.Transaction {
	blob, found, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		r.logger.Warn("Failed to read transaction history, treating as empty", "error", err)
		return nil
	}
	if !found {
		return nil
	}

	var history []*transfer.Transaction
	if err := json.Unmarshal(blob, &history); err != nil {
		r.logger.Warn("Corrupt transaction history, treating as empty", "error", err)
		return nil
	}

	return history
}
