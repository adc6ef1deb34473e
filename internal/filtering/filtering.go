package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/jobs"
	"github.com/spigell/careersuite/internal/matcher"
)

// Filter represents a single filtering step applied to job listings.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config, deps Deps) error
	Apply(ctx context.Context, deps Deps, l *jobs.Listings) (*jobs.Listings, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger   *zap.Logger
	Analyzer *matcher.Analyzer
	// Resume is the plain resume text used by the fit step.
	Resume string
	// Favorites holds ids of favorite jobs.
	Favorites []string
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains the search criteria consumed by the filters.
type Config struct {
	Query            string   `mapstructure:"query"`
	Location         string   `mapstructure:"location"`
	RemoteOnly       bool     `mapstructure:"remote-only"`
	MinSalary        int      `mapstructure:"min-salary"`
	Experience       string   `mapstructure:"experience"`
	EmploymentType   string   `mapstructure:"employment-type"`
	ExcludeEmployers []string `mapstructure:"exclude-employers"`
	ExcludeFavorites bool     `mapstructure:"exclude-favorites"`
	MinimumScore     int      `mapstructure:"minimum-score"`
	ScoreConcurrency int      `mapstructure:"score-concurrency"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Defaults returns the standard pipeline in execution order.
func Defaults() []Filter {
	return []Filter{
		NewQuery(),
		NewEmploymentType(),
		NewLocation(),
		NewRemoteOnly(),
		NewMinSalary(),
		NewExperience(),
		NewEmployers(),
		NewExcludeFavorites(),
		NewFit(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled filter and then applies them in order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, l *jobs.Listings) (*jobs.Listings, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg, deps); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, l)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		l = next
	}

	return l, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
