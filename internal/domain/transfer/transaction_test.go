package transfer

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		amount := decimal.NewFromInt(500)
		tx, err := NewTransaction("  Alice  ", amount, " lunch ")

		require.NoError(t, err)
		assert.Equal(t, "Alice", tx.Recipient.Name)
		assert.Equal(t, "lunch", tx.Note)
		assert.Equal(t, StatusPending, tx.Status)
		assert.True(t, tx.Amount.Equal(amount))
		assert.NotEmpty(t, tx.ID)
		assert.NotEmpty(t, tx.Recipient.ID)
		assert.True(t, strings.HasPrefix(tx.Recipient.AccountNumber, "ACC"))
		assert.Len(t, tx.Recipient.AccountNumber, 9)
		assert.False(t, tx.Date.IsZero())
	})

	t.Run("EmptyRecipient", func(t *testing.T) {
		_, err := NewTransaction("   ", decimal.NewFromInt(500), "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		_, err := NewTransaction("Alice", decimal.Zero, "")
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = NewTransaction("Alice", decimal.NewFromInt(-5), "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("IDsAreUniqueAndTimeOrdered", func(t *testing.T) {
		var previous string
		for i := 0; i < 50; i++ {
			tx, err := NewTransaction("Alice", decimal.NewFromInt(1), "")
			require.NoError(t, err)
			if previous != "" {
				// ULIDs from a monotonic source sort in creation order
				assert.Less(t, previous, tx.ID)
			}
			previous = tx.ID
		}
	})
}

func TestTransaction_Settled(t *testing.T) {
	tx, err := NewTransaction("Alice", decimal.NewFromInt(500), "")
	require.NoError(t, err)

	settled := tx.Settled()

	assert.Equal(t, StatusValid, settled.Status)
	assert.Equal(t, tx.ID, settled.ID)
	// The original is untouched; a settled transaction is a new value
	assert.Equal(t, StatusPending, tx.Status)
}

func TestAuthDeniedError_Is(t *testing.T) {
	err := AuthDeniedError{Reason: "cancelled"}

	assert.ErrorIs(t, err, AuthDeniedError{})
	assert.ErrorIs(t, err, AuthDeniedError{Reason: "cancelled"})
	assert.NotErrorIs(t, err, AuthDeniedError{Reason: "locked out"})
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestSettlementError(t *testing.T) {
	cause := errors.New("network error")
	err := SettlementError{Cause: cause}

	assert.ErrorIs(t, err, SettlementError{})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "network error")
}
