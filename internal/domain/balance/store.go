// Package balance holds the single in-memory account balance. The balance is
// seeded once at process start and never persisted; it only decreases, via
// successful settlements routed through the transfer service.
package balance

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Observer receives the new balance after every mutation.
type Observer func(balance decimal.Decimal)

// Store holds the account balance and fans out changes to subscribers.
// Debit does not enforce non-negativity: the funds check belongs to the
// transfer service, which serializes submissions.
type Store struct {
	mu        sync.RWMutex
	balance   decimal.Decimal
	observers []Observer
}

// NewStore creates a balance store seeded with the given amount.
func NewStore(seed decimal.Decimal) *Store {
	return &Store{balance: seed}
}

// Balance returns the current balance. Side-effect free.
func (s *Store) Balance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance
}

// Debit unconditionally subtracts amount from the balance and notifies
// subscribers of the new value.
func (s *Store) Debit(amount decimal.Decimal) {
	s.mu.Lock()
	s.balance = s.balance.Sub(amount)
	newBalance := s.balance
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	// Notify outside the lock so a subscriber reading the balance back
	// cannot deadlock.
	for _, fn := range observers {
		fn(newBalance)
	}
}

// Subscribe registers an observer for balance changes. Subscriptions live for
// the process lifetime; there is no unsubscribe.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}
