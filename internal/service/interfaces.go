package service

import (
	"context"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/authn"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/transfer"
)

// TransferRequest carries one transfer attempt. AmountInput is the raw user
// entry; parsing and validation happen inside the service. Prompter answers
// the authorization prompts for this attempt.
type TransferRequest struct {
	RecipientName string
	AmountInput   string
	Note          string
	Prompter      authn.Prompter
}

// TransferService defines the interface for submitting transfers
type TransferService interface {
	// SubmitTransfer validates, authorizes and settles one transfer.
	// On success the balance has been debited and the returned transaction
	// (status VALID) is the head of the ledger. On any failure no state
	// was mutated.
	SubmitTransfer(ctx context.Context, req TransferRequest) (*transfer.Transaction, error)
}

// Authorizer produces an allow/deny verdict for one transfer attempt
type Authorizer interface {
	Authorize(ctx context.Context, prompter authn.Prompter) authn.Verdict
}

// SettlementProcessor submits a transaction for settlement. On success the
// returned transaction is VALID and already persisted to the ledger.
type SettlementProcessor interface {
	Settle(ctx context.Context, tx *transfer.Transaction) (*transfer.Transaction, error)
}
