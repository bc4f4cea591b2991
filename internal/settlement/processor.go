// Package settlement simulates the remote transfer processor. A settlement
// attempt waits out a configured latency, fails with a configured
// probability, and on success persists the transaction to the ledger before
// reporting back. Callers treat settle-and-persist as one atomic step: the
// balance must not be debited unless Settle returns without error.
package settlement

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/ledger"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/transfer"
)

// ErrNetwork is the simulated remote failure.
var ErrNetwork = errors.New("network error")

// Processor submits transactions for settlement. One attempt per call;
// retry policy belongs to the caller.
type Processor struct {
	ledgerRepo  ledger.Repository
	logger      *slog.Logger
	latency     time.Duration
	failureRate float64
	random      func() float64
}

// Option configures a Processor.
type Option func(*Processor)

// WithRandom replaces the failure-injection source. Tests use this to force
// both outcomes deterministically.
func WithRandom(random func() float64) Option {
	return func(p *Processor) {
		p.random = random
	}
}

// NewProcessor creates a settlement processor with the given simulated
// latency and failure probability (0 disables injected failures).
func NewProcessor(logger *slog.Logger, ledgerRepo ledger.Repository, latency time.Duration, failureRate float64, opts ...Option) *Processor {
	p := &Processor{
		ledgerRepo:  ledgerRepo,
		logger:      logger,
		latency:     latency,
		failureRate: failureRate,
		random:      rand.Float64,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Settle runs one settlement attempt. On success the returned transaction is
// marked VALID and has been appended to the ledger. On failure nothing was
// persisted. Settlement runs to completion once started; the latency wait
// itself honors context cancellation only because nothing has been submitted
// yet at that point.
func (p *Processor) Settle(ctx context.Context, tx *transfer.Transaction) (*transfer.Transaction, error) {
	if p.latency > 0 {
		select {
		case <-time.After(p.latency):
		case <-ctx.Done():
			return nil, transfer.SettlementError{Cause: ctx.Err()}
		}
	}

	if p.random() < p.failureRate {
		p.logger.Warn("Settlement rejected by remote processor",
			"transaction_id", tx.ID,
			"error", ErrNetwork)
		return nil, transfer.SettlementError{Cause: ErrNetwork}
	}

	settled := tx.Settled()
	if err := p.ledgerRepo.Append(ctx, settled); err != nil {
		p.logger.Error("Settled transaction could not be recorded",
			"transaction_id", tx.ID,
			"error", err)
		return nil, transfer.SettlementError{Cause: err}
	}

	p.logger.Info("Transaction settled",
		"transaction_id", settled.ID,
		"recipient", settled.Recipient.Name,
		"amount", settled.Amount.String())

	return settled, nil
}
