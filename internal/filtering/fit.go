package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/careersuite/internal/jobs"
	"github.com/spigell/careersuite/internal/matcher"
)

const defaultScoreConcurrency = 8

type fitFilter struct {
	disabled    bool
	reason      string
	minimum     int
	concurrency int
}

// NewFit creates the step that scores every job against the resume and drops weak matches.
// It is skipped when no resume is supplied.
func NewFit() Filter {
	return &fitFilter{}
}

func (f *fitFilter) Name() string { return "fit" }

func (f *fitFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *fitFilter) IsEnabled() bool { return !f.disabled }

func (f *fitFilter) Validate(cfg *Config, deps Deps) error {
	if cfg.MinimumScore < matcher.MinScore || cfg.MinimumScore > matcher.MaxScore {
		return fmt.Errorf("minimum score must be within [%d, %d], got %d", matcher.MinScore, matcher.MaxScore, cfg.MinimumScore)
	}
	f.minimum = cfg.MinimumScore

	f.concurrency = cfg.ScoreConcurrency
	if f.concurrency <= 0 {
		f.concurrency = defaultScoreConcurrency
	}

	if deps.Resume == "" {
		return nil
	}
	if deps.Analyzer == nil {
		return fmt.Errorf("analyzer is required when a resume is supplied")
	}
	return matcher.Validate(deps.Resume)
}

func (f *fitFilter) Apply(ctx context.Context, deps Deps, l *jobs.Listings) (*jobs.Listings, Step, error) {
	initial := l.Len()
	if deps.Resume == "" {
		if deps.Logger != nil {
			deps.Logger.Debug("resume is not supplied; skipping fit filter")
		}
		return l, Step{Initial: initial, Dropped: 0, Left: l.Len()}, nil
	}

	if err := Rank(ctx, deps.Analyzer, deps.Resume, l, f.concurrency); err != nil {
		return l, Step{}, err
	}

	removed := l.Retain(func(job *jobs.Job) bool {
		return job.Fit != nil && job.Fit.Error == "" && job.Fit.Score >= f.minimum
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding jobs below minimum fit score",
			zap.Int("minimum_score", f.minimum),
			zap.Int("excluded", len(removed)),
			zap.Int("jobs_left", l.Len()),
		)
	}

	return l, Step{Initial: initial, Dropped: len(removed), Left: l.Len()}, nil
}

func (f *fitFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: !f.disabled,
		Reason:  f.reason,
		Details: map[string]string{
			"minimum_score": strconv.Itoa(f.minimum),
			"concurrency":   strconv.Itoa(f.concurrency),
		},
	}
}

// Rank scores resume against every job and stores the outcome in job.Fit.
// At most limit jobs are scored at the same time.
func Rank(ctx context.Context, analyzer *matcher.Analyzer, resume string, l *jobs.Listings, limit int) error {
	if limit <= 0 {
		limit = defaultScoreConcurrency
	}

	fits := make([]*jobs.Fit, l.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range l.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			score, err := analyzer.Score(resume, job.ScoringText())
			if err != nil {
				fits[i] = &jobs.Fit{Error: err.Error()}
				return nil
			}
			fits[i] = &jobs.Fit{Score: score.Value, Matched: score.Matched, Missing: score.Missing}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("scoring jobs: %w", err)
	}

	for i, job := range l.Items {
		job.Fit = fits[i]
	}
	return nil
}
