// Package ledger defines the bounded transaction history. The ledger holds
// the most recent completed transfers, newest first, and is advisory: it
// seeds history displays but is never consulted for balance correctness.
package ledger

import (
	"context"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/transfer"
)

// MaxEntries is the default cap on retained history.
const MaxEntries = 10

// Repository manages the bounded transaction history.
//
// Only settled (VALID) transactions are appended. Read operations must
// degrade to an empty history when the underlying storage is missing or
// corrupt rather than surface an error.
type Repository interface {
	// Append inserts the transaction at the head and truncates the history
	// to the configured cap.
	Append(ctx context.Context, tx *transfer.Transaction) error

	// Recent returns up to n transactions, newest first. Re-querying
	// reflects the current state, not a snapshot.
	Recent(ctx context.Context, n int) ([]*transfer.Transaction, error)

	// LoadAll returns the entire bounded history, newest first.
	LoadAll(ctx context.Context) ([]*transfer.Transaction, error)
}
