package transfer

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Status defines transaction processing states
type Status string

const (
	StatusPending Status = "PENDING"
	StatusValid   Status = "VALID"
	StatusInvalid Status = "INVALID"
)

// Recipient identifies the receiving party of a transfer. Recipients are
// synthesized from the user-entered name at transfer time and are not
// validated against any directory.
type Recipient struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
}

// Transaction represents a single money transfer. A transaction is immutable
// once its status is VALID; a retried transfer creates a new transaction.
type Transaction struct {
	ID        string          `json:"id"`
	Recipient Recipient       `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	Date      time.Time       `json:"date"`
	Status    Status          `json:"status"`
}

// NewTransaction creates a PENDING transaction for the given recipient name
// and amount. The ID is a ULID, so IDs are unique and sort in creation order.
func NewTransaction(recipientName string, amount decimal.Decimal, note string) (*Transaction, error) {
	name := strings.TrimSpace(recipientName)
	if name == "" {
		return nil, fmt.Errorf("%w: recipient name is required", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	}

	now := time.Now().UTC()

	return &Transaction{
		ID: ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Recipient: Recipient{
			ID:            uuid.New().String(),
			Name:          name,
			AccountNumber: newAccountNumber(),
		},
		Amount: amount,
		Note:   strings.TrimSpace(note),
		Date:   now,
		Status: StatusPending,
	}, nil
}

// Settled returns a copy of the transaction marked VALID.
func (t *Transaction) Settled() *Transaction {
	settled := *t
	settled.Status = StatusValid
	return &settled
}

// newAccountNumber synthesizes a six digit account number prefixed with "ACC".
func newAccountNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand on supported platforms does not fail; fall back to a
		// fixed prefix rather than aborting a transfer over a display field.
		return "ACC000000"
	}
	return fmt.Sprintf("ACC%06d", n.Int64()+100000)
}
