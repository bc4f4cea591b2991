package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/balance"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/transfer"
)

// TransferServiceImpl implements the TransferService interface
type TransferServiceImpl struct {
	balanceStore *balance.Store
	authorizer   Authorizer
	processor    SettlementProcessor
	logger       *slog.Logger
}

// NewTransferService creates a new transfer service
func NewTransferService(logger *slog.Logger, balanceStore *balance.Store, authorizer Authorizer, processor SettlementProcessor) TransferService {
	return &TransferServiceImpl{
		balanceStore: balanceStore,
		authorizer:   authorizer,
		processor:    processor,
		logger:       logger,
	}
}

// SubmitTransfer runs one transfer end to end: validate input, check funds,
// authorize, settle, debit. Every failure path returns before any mutation;
// the debit happens only after the processor reported settle-and-persist
// success. Callers must serialize submissions (see SerializedTransferService).
func (s *TransferServiceImpl) SubmitTransfer(ctx context.Context, req TransferRequest) (*transfer.Transaction, error) {
	amount, err := s.parseAmount(req.AmountInput)
	if err != nil {
		return nil, err
	}
	recipientName := strings.TrimSpace(req.RecipientName)
	if recipientName == "" {
		return nil, fmt.Errorf("%w: recipient name is required", transfer.ErrInvalidInput)
	}

	available := s.balanceStore.Balance()
	if amount.GreaterThan(available) {
		s.logger.Info("Transfer rejected, insufficient funds",
			"amount", amount.String(),
			"balance", available.String())
		return nil, transfer.ErrInsufficientFunds
	}

	verdict := s.authorizer.Authorize(ctx, req.Prompter)
	if !verdict.Granted {
		s.logger.Info("Transfer authorization denied", "reason", verdict.Reason)
		return nil, transfer.AuthDeniedError{Reason: verdict.Reason}
	}

	tx, err := transfer.NewTransaction(recipientName, amount, req.Note)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Submitting transfer for settlement",
		"transaction_id", tx.ID,
		"recipient", tx.Recipient.Name,
		"amount", tx.Amount.String(),
		"auth_method", string(verdict.Method))

	settled, err := s.processor.Settle(ctx, tx)
	if err != nil {
		s.logger.Warn("Transfer settlement failed",
			"transaction_id", tx.ID,
			"error", err)
		return nil, err
	}

	s.balanceStore.Debit(amount)
	s.logger.Info("Transfer completed",
		"transaction_id", settled.ID,
		"new_balance", s.balanceStore.Balance().String())

	return settled, nil
}

// parseAmount validates that the raw entry parses to a decimal > 0.
func (s *TransferServiceImpl) parseAmount(input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", transfer.ErrInvalidInput)
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", transfer.ErrInvalidInput, trimmed)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be greater than zero", transfer.ErrInvalidInput)
	}
	return amount, nil
}
