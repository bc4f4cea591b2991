// Package persistence provides the key-value blob stores backing the
// transaction ledger. The ledger is a single serialized blob under a fixed
// key, so the store surface is deliberately small: get one blob, set one blob.
package persistence

import (
	"context"
	"sync"
)

// KVStore is the opaque blob store behind the ledger.
type KVStore interface {
	// Get returns the blob for key. found is false when the key is absent;
	// absence is not an error.
	Get(ctx context.Context, key string) (blob []byte, found bool, err error)

	// Set stores the blob under key, replacing any previous value.
	Set(ctx context.Context, key string, blob []byte) error
}

// MemoryKV is an in-process KVStore. It is the default backend and the one
// used in tests; contents are lost on restart.
type MemoryKV struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{blobs: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(blob))
	copy(out, blob)
	return out, true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(blob))
	copy(stored, blob)
	m.blobs[key] = stored
	return nil
}
