package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/jobs"
)

// attributeFilter drops jobs that do not satisfy a predicate over the job's own fields.
type attributeFilter struct {
	name     string
	disabled bool
	reason   string

	// criterion returns the configured value and whether the filter has anything to do.
	criterion func(cfg *Config) (string, bool)
	validate  func(cfg *Config) error
	keep      func(value string, job *jobs.Job) bool

	value  string
	active bool
}

// NewQuery keeps jobs whose title, employer or description contains the query.
func NewQuery() Filter {
	return &attributeFilter{
		name: "query",
		criterion: func(cfg *Config) (string, bool) {
			q := strings.ToLower(strings.TrimSpace(cfg.Query))
			return q, q != ""
		},
		keep: func(q string, job *jobs.Job) bool {
			return strings.Contains(strings.ToLower(job.Title), q) ||
				strings.Contains(strings.ToLower(job.Employer), q) ||
				strings.Contains(strings.ToLower(job.Description), q)
		},
	}
}

// NewLocation keeps jobs in a matching city. "remote" keeps remote jobs.
func NewLocation() Filter {
	return &attributeFilter{
		name: "location",
		criterion: func(cfg *Config) (string, bool) {
			loc := strings.ToLower(strings.TrimSpace(cfg.Location))
			return loc, loc != ""
		},
		keep: func(loc string, job *jobs.Job) bool {
			if loc == "remote" && job.IsRemote {
				return true
			}
			return strings.Contains(strings.ToLower(job.City), loc)
		},
	}
}

// NewRemoteOnly keeps remote jobs.
func NewRemoteOnly() Filter {
	return &attributeFilter{
		name: "remote_only",
		criterion: func(cfg *Config) (string, bool) {
			return strconv.FormatBool(cfg.RemoteOnly), cfg.RemoteOnly
		},
		keep: func(_ string, job *jobs.Job) bool {
			return job.IsRemote
		},
	}
}

// NewMinSalary keeps jobs whose top salary figure reaches the configured minimum.
func NewMinSalary() Filter {
	return &attributeFilter{
		name: "min_salary",
		criterion: func(cfg *Config) (string, bool) {
			return strconv.Itoa(cfg.MinSalary), cfg.MinSalary > 0
		},
		validate: func(cfg *Config) error {
			if cfg.MinSalary < 0 {
				return fmt.Errorf("minimum salary must not be negative, got %d", cfg.MinSalary)
			}
			return nil
		},
		keep: func(value string, job *jobs.Job) bool {
			threshold, _ := strconv.Atoi(value)
			return job.SalaryCeiling() >= threshold
		},
	}
}

// NewExperience keeps jobs with the configured experience level.
func NewExperience() Filter {
	return &attributeFilter{
		name: "experience",
		criterion: func(cfg *Config) (string, bool) {
			exp := strings.TrimSpace(cfg.Experience)
			return exp, exp != ""
		},
		keep: func(exp string, job *jobs.Job) bool {
			return strings.EqualFold(job.Experience, exp)
		},
	}
}

// NewEmploymentType keeps jobs of one employment type. Empty or ALL disables it.
func NewEmploymentType() Filter {
	return &attributeFilter{
		name: "employment_type",
		criterion: func(cfg *Config) (string, bool) {
			kind := strings.ToUpper(strings.TrimSpace(cfg.EmploymentType))
			return kind, kind != "" && kind != "ALL"
		},
		validate: func(cfg *Config) error {
			switch strings.ToUpper(strings.TrimSpace(cfg.EmploymentType)) {
			case "", "ALL", jobs.FullTime, jobs.PartTime, jobs.Contractor, jobs.Intern:
				return nil
			default:
				return fmt.Errorf("unknown employment type %q", cfg.EmploymentType)
			}
		},
		keep: func(kind string, job *jobs.Job) bool {
			return strings.EqualFold(job.EmploymentType, kind)
		},
	}
}

func (f *attributeFilter) Name() string { return f.name }

func (f *attributeFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *attributeFilter) IsEnabled() bool { return !f.disabled }

func (f *attributeFilter) Validate(cfg *Config, _ Deps) error {
	if f.validate != nil {
		if err := f.validate(cfg); err != nil {
			return err
		}
	}
	f.value, f.active = f.criterion(cfg)
	return nil
}

func (f *attributeFilter) Apply(_ context.Context, deps Deps, l *jobs.Listings) (*jobs.Listings, Step, error) {
	initial := l.Len()
	if !f.active {
		return l, Step{Initial: initial, Dropped: 0, Left: l.Len()}, nil
	}

	removed := l.Retain(func(job *jobs.Job) bool {
		return f.keep(f.value, job)
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Debug("excluding jobs",
			zap.String("filter", f.name),
			zap.String("criterion", f.value),
			zap.Int("excluded", len(removed)),
			zap.Int("jobs_left", l.Len()),
		)
	}

	return l, Step{Initial: initial, Dropped: len(removed), Left: l.Len()}, nil
}

func (f *attributeFilter) Status() Status {
	details := map[string]string{}
	if f.active {
		details["criterion"] = f.value
	}
	return Status{Name: f.name, Enabled: !f.disabled, Reason: f.reason, Details: details}
}
