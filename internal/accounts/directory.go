// Package accounts implements the user directory: registration and
// credential checks over the "users" key.
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"todomaster/internal/service"
	"todomaster/internal/store"
)

// UsersKey holds the serialized account sequence.
const UsersKey = "users"

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials is returned when no account matches a login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidUsername is returned for empty or whitespace-only usernames.
	ErrInvalidUsername = errors.New("username required")

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = errors.New("password too long (max 72 bytes)")
)

// Directory owns the set of registered accounts. Accounts are never updated
// or deleted.
type Directory struct {
	kv     store.Store
	hasher Hasher
	log    *zap.Logger
}

// NewDirectory creates a Directory over kv.
func NewDirectory(kv store.Store, hasher Hasher, log *zap.Logger) *Directory {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Directory{kv: kv, hasher: hasher, log: log}
}

// List returns every account in registration order.
func (d *Directory) List(ctx context.Context) ([]service.Account, error) {
	raw, ok, err := d.kv.Get(ctx, UsersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []service.Account{}, nil
	}
	var users []service.Account
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", UsersKey, err)
	}
	if users == nil {
		users = []service.Account{}
	}
	return users, nil
}

// Register appends a new account and persists the whole directory.
func (d *Directory) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrInvalidUsername
	}

	users, err := d.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == username {
			return ErrUsernameTaken
		}
	}

	hash, err := d.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return ErrPasswordTooLong
		}
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users = append(users, service.Account{Username: username, Password: hash})
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	if err := d.kv.Set(ctx, UsersKey, string(data)); err != nil {
		return err
	}

	d.log.Debug("account registered", zap.String("user", username), zap.Int("accounts", len(users)))
	return nil
}

// Authenticate returns the account whose username and password both match.
func (d *Directory) Authenticate(ctx context.Context, username, password string) (service.Account, error) {
	users, err := d.List(ctx)
	if err != nil {
		return service.Account{}, err
	}
	for _, u := range users {
		if u.Username != username {
			continue
		}
		ok, err := d.hasher.Matches(u.Password, password)
		if err != nil {
			return service.Account{}, fmt.Errorf("failed to check password: %w", err)
		}
		if ok {
			return u, nil
		}
	}
	d.log.Debug("authentication failed", zap.String("user", username))
	return service.Account{}, ErrInvalidCredentials
}

// Lookup finds an account by exact username.
func (d *Directory) Lookup(ctx context.Context, username string) (service.Account, bool, error) {
	users, err := d.List(ctx)
	if err != nil {
		return service.Account{}, false, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return service.Account{}, false, nil
}
