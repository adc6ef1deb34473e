package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/jobs"
)

type employersFilter struct {
	employers []string
}

// NewEmployers creates a filter that removes jobs by employers configured in the config.
func NewEmployers() Filter {
	return &employersFilter{}
}

func (f *employersFilter) Name() string { return "employers" }

func (f *employersFilter) Disable(string) {}

func (f *employersFilter) IsEnabled() bool { return true }

func (f *employersFilter) Validate(cfg *Config, _ Deps) error {
	f.employers = nil
	for _, e := range cfg.ExcludeEmployers {
		if e = strings.TrimSpace(e); e != "" {
			f.employers = append(f.employers, e)
		}
	}
	return nil
}

func (f *employersFilter) Apply(_ context.Context, deps Deps, l *jobs.Listings) (*jobs.Listings, Step, error) {
	initial := l.Len()
	if len(f.employers) == 0 {
		return l, Step{Initial: initial, Dropped: 0, Left: l.Len()}, nil
	}

	excluded := l.Retain(func(job *jobs.Job) bool {
		for _, e := range f.employers {
			if strings.EqualFold(job.Employer, e) {
				return false
			}
		}
		return true
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding jobs by employers",
			zap.Strings("excluded_employers", f.employers),
			zap.Int("excluded_jobs", len(excluded)),
			zap.Int("jobs_left", l.Len()),
		)
	}

	return l, Step{Initial: initial, Dropped: len(excluded), Left: l.Len()}, nil
}

func (f *employersFilter) Status() Status {
	details := map[string]string{}
	if len(f.employers) > 0 {
		details["employers"] = strings.Join(f.employers, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
