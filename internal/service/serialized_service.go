package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/panjf2000/ants/v2"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/transfer"
)

// SerializedTransferService wraps a TransferService with a single-slot,
// non-blocking worker pool. At most one transfer is in flight per account;
// a second concurrent submission is rejected immediately with
// ErrTransferInProgress instead of being queued, so the funds check made at
// submission time still holds at commit time.
type SerializedTransferService struct {
	base   TransferService
	pool   *ants.Pool
	logger *slog.Logger
}

// NewSerializedTransferService creates the serialized wrapper.
func NewSerializedTransferService(base TransferService, logger *slog.Logger) (*SerializedTransferService, error) {
	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &SerializedTransferService{
		base:   base,
		pool:   pool,
		logger: logger,
	}, nil
}

type submitResult struct {
	tx  *transfer.Transaction
	err error
}

// SubmitTransfer submits the transfer to the single worker slot and waits
// for its result. A full slot means another transfer is in flight.
func (s *SerializedTransferService) SubmitTransfer(ctx context.Context, req TransferRequest) (*transfer.Transaction, error) {
	resultChan := make(chan submitResult, 1)

	err := s.pool.Submit(func() {
		tx, submitErr := s.base.SubmitTransfer(ctx, req)
		resultChan <- submitResult{tx: tx, err: submitErr}
	})
	if err != nil {
		if errors.Is(err, ants.ErrPoolOverload) {
			s.logger.Info("Transfer rejected, another transfer is in flight")
			return nil, transfer.ErrTransferInProgress
		}
		s.logger.Error("Failed to submit transfer to worker slot", "error", err)
		return nil, err
	}

	result := <-resultChan
	return result.tx, result.err
}

// Shutdown releases the worker slot.
func (s *SerializedTransferService) Shutdown() {
	s.logger.Info("Shutting down transfer worker", "running", s.pool.Running())
	s.pool.Release()
}
