// Package tasks implements per-account task collections stored under
// "todos_<username>". Every mutation reads, modifies and rewrites the whole
// collection.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"todomaster/internal/service"
	"todomaster/internal/store"
)

// KeyPrefix prefixes every per-account task key.
const KeyPrefix = "todos_"

// CreatedAtLayout matches JavaScript's Date.prototype.toISOString.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

// Key returns the store key holding username's tasks.
func Key(username string) string {
	return KeyPrefix + username
}

// Repository owns the task collections.
type Repository struct {
	kv  store.Store
	now func() time.Time
	log *zap.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithLogger sets the debug logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Repository) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRepository creates a Repository over kv.
func NewRepository(kv store.Store, opts ...Option) *Repository {
	r := &Repository{
		kv:  kv,
		now: time.Now,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns username's tasks. An absent key is an empty collection.
func (r *Repository) Load(ctx context.Context, username string) ([]service.Task, error) {
	key := Key(username)
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []service.Task{}, nil
	}
	var tasks []service.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// Save overwrites username's tasks with the given collection.
func (r *Repository) Save(ctx context.Context, username string, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, Key(username), string(data)); err != nil {
		return err
	}
	r.log.Debug("tasks saved", zap.String("user", username), zap.Int("count", len(tasks)))
	return nil
}

// Add appends a task with the given text. Blank text is ignored and the
// collection is returned unchanged without a write.
func (r *Repository) Add(ctx context.Context, username, text string) ([]service.Task, error) {
	tasks, err := r.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return tasks, nil
	}

	now := r.now().UTC()
	task := service.Task{
		ID:        nextID(tasks, now),
		Text:      text,
		Completed: false,
		CreatedAt: now.Format(CreatedAtLayout),
	}
	tasks = append(tasks, task)
	if err := r.Save(ctx, username, tasks); err != nil {
		return nil, err
	}
	r.log.Debug("task added", zap.String("user", username), zap.Int64("id", task.ID))
	return tasks, nil
}

// Toggle flips the completed flag of the task with id. The collection is
// persisted even when no task matches.
func (r *Repository) Toggle(ctx context.Context, username string, id int64) ([]service.Task, error) {
	tasks, err := r.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
		}
	}
	if err := r.Save(ctx, username, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Delete removes the task with id. The collection is persisted even when no
// task matches.
func (r *Repository) Delete(ctx context.Context, username string, id int64) ([]service.Task, error) {
	tasks, err := r.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	kept := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if err := r.Save(ctx, username, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// nextID returns the current time in Unix milliseconds, bumped past every id
// already in the collection so that ids stay unique.
func nextID(tasks []service.Task, now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}
