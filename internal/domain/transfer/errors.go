package transfer

import "errors"

// Common errors
var (
	ErrInvalidInput       = errors.New("invalid transfer input")
	ErrInsufficientFunds  = errors.New("insufficient funds for transfer")
	ErrTransferInProgress = errors.New("another transfer is already in progress")
)

// AuthDeniedError indicates the authorization flow ended in a denial.
// Reason is user-visible (e.g. "cancelled", "locked out").
type AuthDeniedError struct {
	Reason string
}

func (e AuthDeniedError) Error() string {
	if e.Reason == "" {
		return "transfer authorization denied"
	}
	return "transfer authorization denied: " + e.Reason
}

// Is implements the errors.Is interface for AuthDeniedError
func (e AuthDeniedError) Is(target error) bool {
	t, ok := target.(AuthDeniedError)
	if !ok {
		return false
	}
	// An empty target reason matches any denial
	return t.Reason == "" || t.Reason == e.Reason
}

// SettlementError indicates the remote processor rejected or failed the
// settlement attempt. The transfer left no local state behind.
type SettlementError struct {
	Cause error
}

func (e SettlementError) Error() string {
	if e.Cause == nil {
		return "settlement failed"
	}
	return "settlement failed: " + e.Cause.Error()
}

func (e SettlementError) Unwrap() error {
	return e.Cause
}

// Is implements the errors.Is interface for SettlementError
func (e SettlementError) Is(target error) bool {
	_, ok := target.(SettlementError)
	return ok
}
