// Package favorites keeps the user's saved jobs in a key-value store.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/jobs"
	"github.com/spigell/careersuite/internal/storage"
)

// Key is the store key the favorites are saved under.
const Key = "favorites"

// List is the ordered set of favorite jobs, unique by job id.
type List struct {
	store  storage.Store
	logger *zap.Logger
	items  []*jobs.Job
}

// Load reads the favorites from store. A missing key is an empty list.
func Load(ctx context.Context, store storage.Store, logger *zap.Logger) (*List, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	l := &List{store: store, logger: logger}

	raw, ok, err := store.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}
	if !ok || len(raw) == 0 {
		return l, nil
	}

	if err := json.Unmarshal(raw, &l.items); err != nil {
		return nil, fmt.Errorf("decoding favorites: %w", err)
	}
	l.items = slices.DeleteFunc(l.items, func(j *jobs.Job) bool { return j == nil || j.ID == "" })

	return l, nil
}

// Items returns a copy of the favorite jobs.
func (l *List) Items() []*jobs.Job {
	return slices.Clone(l.items)
}

func (l *List) Len() int { return len(l.items) }

// IDs returns the favorite job ids in the order they were added.
func (l *List) IDs() []string {
	ids := make([]string, 0, len(l.items))
	for _, j := range l.items {
		ids = append(ids, j.ID)
	}
	return ids
}

func (l *List) Contains(id string) bool {
	return l.index(id) >= 0
}

// Toggle adds job if it is not a favorite yet and removes it otherwise.
// It reports whether the job is a favorite after the call.
func (l *List) Toggle(ctx context.Context, job *jobs.Job) (bool, error) {
	if job == nil || job.ID == "" {
		return false, fmt.Errorf("job with an id is required")
	}

	var next []*jobs.Job
	added := false
	if idx := l.index(job.ID); idx >= 0 {
		next = slices.Delete(slices.Clone(l.items), idx, idx+1)
	} else {
		saved := *job
		saved.Fit = nil
		next = append(slices.Clone(l.items), &saved)
		added = true
	}

	if err := l.save(ctx, next); err != nil {
		return false, err
	}
	l.items = next

	l.logger.Debug("favorite toggled", zap.String("job_id", job.ID), zap.Bool("favorite", added), zap.Int("count", len(l.items)))
	return added, nil
}

// Remove deletes the job with id. It reports whether anything was removed.
func (l *List) Remove(ctx context.Context, id string) (bool, error) {
	idx := l.index(id)
	if idx < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(l.items), idx, idx+1)
	if err := l.save(ctx, next); err != nil {
		return false, err
	}
	l.items = next
	return true, nil
}

// Clear removes every favorite.
func (l *List) Clear(ctx context.Context) error {
	if err := l.store.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clearing favorites: %w", err)
	}
	l.items = nil
	return nil
}

func (l *List) index(id string) int {
	return slices.IndexFunc(l.items, func(j *jobs.Job) bool { return j.ID == id })
}

// save writes items to the store. The in-memory list is updated by callers only on success.
func (l *List) save(ctx context.Context, items []*jobs.Job) error {
	if items == nil {
		items = []*jobs.Job{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	if err := l.store.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}
	return nil
}
