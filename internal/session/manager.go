package session

import (
	"context"

	"go.uber.org/zap"

	"todomaster/internal/store"
)

// CurrentUserKey holds the username of the active session.
const CurrentUserKey = "currentUser"

// Manager owns which account, if any, is currently active.
type Manager struct {
	kv  store.Store
	log *zap.Logger
}

// NewManager creates a Manager over kv.
func NewManager(kv store.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{kv: kv, log: log}
}

// Start records username as the active session.
func (m *Manager) Start(ctx context.Context, username string) error {
	if err := m.kv.Set(ctx, CurrentUserKey, username); err != nil {
		return err
	}
	m.log.Debug("session started", zap.String("user", username))
	return nil
}

// End clears the active session.
func (m *Manager) End(ctx context.Context) error {
	if err := m.kv.Remove(ctx, CurrentUserKey); err != nil {
		return err
	}
	m.log.Debug("session ended")
	return nil
}

// Current returns the persisted session username, if any.
func (m *Manager) Current(ctx context.Context) (string, bool, error) {
	user, ok, err := m.kv.Get(ctx, CurrentUserKey)
	if err != nil || !ok || user == "" {
		return "", false, err
	}
	return user, true, nil
}
