// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"todomaster/internal/store"
)

// ErrInjected is the default error returned by FailingStore.
var ErrInjected = errors.New("injected store failure")

// FailingStore wraps a store.Store and fails selected operations.
type FailingStore struct {
	store.Store

	mu sync.Mutex

	// Error injection for testing. A nil error passes through to the
	// wrapped store.
	GetErr    map[string]error // key -> error
	SetErr    map[string]error // key -> error
	RemoveErr error
	KeysErr   error

	// Writes counts successful Set and Remove calls per key.
	Writes map[string]int
}

// NewFailingStore wraps s. If s is nil, an in-memory store is used.
func NewFailingStore(s store.Store) *FailingStore {
	if s == nil {
		s = store.NewMemory()
	}
	return &FailingStore{
		Store:  s,
		GetErr: make(map[string]error),
		SetErr: make(map[string]error),
		Writes: make(map[string]int),
	}
}

// FailSet makes every Set of key fail.
func (f *FailingStore) FailSet(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetErr[key] = ErrInjected
}

// FailGet makes every Get of key fail.
func (f *FailingStore) FailGet(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetErr[key] = ErrInjected
}

// WriteCount returns the number of successful writes to key.
func (f *FailingStore) WriteCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Writes[key]
}

// Get implements store.Store.
func (f *FailingStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	err := f.GetErr[key]
	f.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return f.Store.Get(ctx, key)
}

// Set implements store.Store.
func (f *FailingStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	err := f.SetErr[key]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	if err := f.Store.Set(ctx, key, value); err != nil {
		return err
	}
	f.mu.Lock()
	f.Writes[key]++
	f.mu.Unlock()
	return nil
}

// Remove implements store.Store.
func (f *FailingStore) Remove(ctx context.Context, key string) error {
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	if err := f.Store.Remove(ctx, key); err != nil {
		return err
	}
	f.mu.Lock()
	f.Writes[key]++
	f.mu.Unlock()
	return nil
}

// Keys implements store.Store.
func (f *FailingStore) Keys(ctx context.Context) ([]string, error) {
	if f.KeysErr != nil {
		return nil, f.KeysErr
	}
	return f.Store.Keys(ctx)
}
