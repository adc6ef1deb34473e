package filtering

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/jobs"
)

type excludeFavoritesFilter struct {
	enabled bool
}

// NewExcludeFavorites creates a filter that hides jobs already saved as favorites.
func NewExcludeFavorites() Filter {
	return &excludeFavoritesFilter{}
}

func (f *excludeFavoritesFilter) Name() string { return "exclude_favorites" }

func (f *excludeFavoritesFilter) Disable(string) { f.enabled = false }

func (f *excludeFavoritesFilter) IsEnabled() bool { return true }

func (f *excludeFavoritesFilter) Validate(cfg *Config, _ Deps) error {
	f.enabled = cfg.ExcludeFavorites
	return nil
}

func (f *excludeFavoritesFilter) Apply(_ context.Context, deps Deps, l *jobs.Listings) (*jobs.Listings, Step, error) {
	initial := l.Len()
	if !f.enabled || len(deps.Favorites) == 0 {
		return l, Step{Initial: initial, Dropped: 0, Left: l.Len()}, nil
	}

	removed := l.Exclude(jobs.JobIDField, deps.Favorites)
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding favorite jobs",
			zap.Strings("excluded_jobs", removed),
			zap.Int("jobs_left", l.Len()),
		)
	}

	return l, Step{Initial: initial, Dropped: len(removed), Left: l.Len()}, nil
}

func (f *excludeFavoritesFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{"active": strconv.FormatBool(f.enabled)}}
}

