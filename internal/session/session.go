// Package session ties the user directory, the active-session key and the
// task repository together behind service.Service.
package session

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"todomaster/internal/accounts"
	"todomaster/internal/schema"
	"todomaster/internal/service"
	"todomaster/internal/store"
	"todomaster/internal/tasks"
)

// ErrNotLoggedIn is returned by task operations on a logged-out state.
var ErrNotLoggedIn = errors.New("not logged in")

// Store implements service.Service over a key-value store.
type Store struct {
	kv       store.Store
	users    *accounts.Directory
	sessions *Manager
	tasks    *tasks.Repository
	log      *zap.Logger
}

var _ service.Service = (*Store)(nil)

// Options configures a Store.
type Options struct {
	Hasher accounts.Hasher
	Clock  func() time.Time
	Log    *zap.Logger
}

// New creates a Store over kv. The Store takes ownership of kv and closes it
// on Close.
func New(kv store.Store, opts Options) *Store {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	repoOpts := []tasks.Option{tasks.WithLogger(log)}
	if opts.Clock != nil {
		repoOpts = append(repoOpts, tasks.WithClock(opts.Clock))
	}
	return &Store{
		kv:       kv,
		users:    accounts.NewDirectory(kv, opts.Hasher, log),
		sessions: NewManager(kv, log),
		tasks:    tasks.NewRepository(kv, repoOpts...),
		log:      log,
	}
}

// Restore implements service.Service.
func (s *Store) Restore(ctx context.Context) (service.State, error) {
	user, ok, err := s.sessions.Current(ctx)
	if err != nil {
		return service.State{}, err
	}
	if !ok {
		return service.State{}, nil
	}

	if _, exists, err := s.users.Lookup(ctx, user); err != nil {
		return service.State{}, err
	} else if !exists {
		s.log.Debug("clearing session for unknown account", zap.String("user", user))
		if err := s.sessions.End(ctx); err != nil {
			return service.State{}, err
		}
		return service.State{}, nil
	}

	return s.open(ctx, user)
}

// Register implements service.Service.
func (s *Store) Register(ctx context.Context, username, password string) (service.State, error) {
	if err := s.users.Register(ctx, username, password); err != nil {
		return service.State{}, err
	}
	if err := s.tasks.Save(ctx, username, nil); err != nil {
		return service.State{}, err
	}
	if err := s.sessions.Start(ctx, username); err != nil {
		return service.State{}, err
	}
	return service.State{User: username, Tasks: []service.Task{}}, nil
}

// Login implements service.Service.
func (s *Store) Login(ctx context.Context, username, password string) (service.State, error) {
	if _, err := s.users.Authenticate(ctx, username, password); err != nil {
		return service.State{}, err
	}
	if err := s.sessions.Start(ctx, username); err != nil {
		return service.State{}, err
	}
	return s.open(ctx, username)
}

// Logout implements service.Service.
func (s *Store) Logout(ctx context.Context, st service.State) (service.State, error) {
	if err := s.sessions.End(ctx); err != nil {
		return st, err
	}
	return service.State{}, nil
}

// AddTask implements service.Service.
func (s *Store) AddTask(ctx context.Context, st service.State, text string) (service.State, error) {
	if !st.LoggedIn() {
		return st, ErrNotLoggedIn
	}
	list, err := s.tasks.Add(ctx, st.User, text)
	if err != nil {
		return st, err
	}
	return service.State{User: st.User, Tasks: list}, nil
}

// ToggleTask implements service.Service.
func (s *Store) ToggleTask(ctx context.Context, st service.State, id int64) (service.State, error) {
	if !st.LoggedIn() {
		return st, ErrNotLoggedIn
	}
	list, err := s.tasks.Toggle(ctx, st.User, id)
	if err != nil {
		return st, err
	}
	return service.State{User: st.User, Tasks: list}, nil
}

// DeleteTask implements service.Service.
func (s *Store) DeleteTask(ctx context.Context, st service.State, id int64) (service.State, error) {
	if !st.LoggedIn() {
		return st, ErrNotLoggedIn
	}
	list, err := s.tasks.Delete(ctx, st.User, id)
	if err != nil {
		return st, err
	}
	return service.State{User: st.User, Tasks: list}, nil
}

// Verify implements service.Service.
func (s *Store) Verify(ctx context.Context) ([]service.Problem, error) {
	v, err := schema.New()
	if err != nil {
		return nil, err
	}
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		return nil, err
	}

	var problems []service.Problem
	known := map[string]bool{}
	usersValid := false

	if raw, ok, err := s.kv.Get(ctx, accounts.UsersKey); err != nil {
		return nil, err
	} else if ok {
		p := v.Users(accounts.UsersKey, raw)
		problems = append(problems, p...)
		if len(p) == 0 {
			usersValid = true
			list, err := s.users.List(ctx)
			if err != nil {
				return nil, err
			}
			for _, u := range list {
				known[u.Username] = true
			}
		}
	} else {
		usersValid = true
	}

	for _, key := range keys {
		switch {
		case key == CurrentUserKey:
			user, _, err := s.kv.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			if user != "" && usersValid && !known[user] {
				problems = append(problems, service.Problem{Key: key, Message: "session names unknown account " + strconv.Quote(user)})
			}

		case strings.HasPrefix(key, tasks.KeyPrefix):
			raw, _, err := s.kv.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			problems = append(problems, v.Tasks(key, raw)...)
			if user := strings.TrimPrefix(key, tasks.KeyPrefix); usersValid && !known[user] {
				problems = append(problems, service.Problem{Key: key, Message: "no account named " + strconv.Quote(user)})
			}
		}
	}

	s.log.Debug("verify finished", zap.Int("keys", len(keys)), zap.Int("problems", len(problems)))
	return problems, nil
}

// Close implements service.Service.
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) open(ctx context.Context, user string) (service.State, error) {
	list, err := s.tasks.Load(ctx, user)
	if err != nil {
		return service.State{}, err
	}
	return service.State{User: user, Tasks: list}, nil
}
