package testutil

import (
	"time"

	"todomaster/internal/accounts"
	"todomaster/internal/session"
	"todomaster/internal/store"
)

// Epoch is the fixed time used by NewService's clock.
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// FastHasher uses the minimum bcrypt cost.
var FastHasher = accounts.BcryptHasher{Cost: 4}

// NewService creates a session.Store over kv with a cheap hasher and a clock
// that advances one millisecond per call from Epoch. A nil kv means a fresh
// in-memory store.
func NewService(kv store.Store) *session.Store {
	if kv == nil {
		kv = store.NewMemory()
	}
	now := Epoch
	return session.New(kv, session.Options{
		Hasher: FastHasher,
		Clock: func() time.Time {
			t := now
			now = now.Add(time.Millisecond)
			return t
		},
	})
}
