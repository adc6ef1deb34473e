package matcher

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidInput is returned when the resume text is empty or whitespace only.
var ErrInvalidInput = errors.New("invalid input")

// Target is the role or job a resume is compared with.
type Target struct {
	Name string
	Text string
}

// MatchResult is the full analysis of a resume against a target.
type MatchResult struct {
	Role     string   `json:"role"`
	Score    int      `json:"score"`
	Base     int      `json:"base"`
	Tier     Tier     `json:"tier"`
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
	Bonuses  []Rule   `json:"bonuses,omitempty"`
	Findings []string `json:"findings"`
	Checks   []Check  `json:"checks"`
	Summary  string   `json:"summary"`
}

type scoreFunc func(resume, job *Document, rules RuleSet) Score

// Analyzer validates input and assembles a MatchResult.
type Analyzer struct {
	rules  RuleSet
	top    int
	logger *zap.Logger
	score  scoreFunc
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRules replaces the default bonus rules.
func WithRules(rules RuleSet) Option {
	return func(a *Analyzer) {
		a.rules = rules
	}
}

// WithTop sets how many keywords findings quote.
func WithTop(top int) Option {
	return func(a *Analyzer) {
		if top > 0 {
			a.top = top
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		rules:  DefaultRules(),
		top:    DefaultTop,
		logger: zap.NewNop(),
		score:  ScoreDocuments,
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.rules.Validate(); err != nil {
		return nil, fmt.Errorf("bonus rules: %w", err)
	}
	return a, nil
}

// Validate rejects resume text that has nothing to score.
func Validate(resumeText string) error {
	if strings.TrimSpace(resumeText) == "" {
		return fmt.Errorf("resume text is empty: %w", ErrInvalidInput)
	}
	return nil
}

// Analyze scores resumeText against target and builds the report.
func (a *Analyzer) Analyze(resumeText string, target Target) (*MatchResult, error) {
	if err := Validate(resumeText); err != nil {
		return nil, err
	}

	resume := NewDocument(resumeText)
	job := NewDocument(target.Text)
	if job.Len() == 0 {
		a.logger.Debug("job text has no tokens, score is zero", zap.String("role", target.Name))
	}

	s := a.score(resume, job, a.rules)
	tier := TierFor(s.Value)

	bonusNames := make([]string, 0, len(s.Bonuses))
	for _, r := range s.Bonuses {
		bonusNames = append(bonusNames, r.Name)
	}

	a.logger.Debug("resume scored",
		zap.String("role", target.Name),
		zap.Int("resume_tokens", resume.Len()),
		zap.Int("job_tokens", job.Len()),
		zap.Int("base", s.Base),
		zap.Int("score", s.Value),
		zap.Strings("bonuses", bonusNames),
		zap.String("tier", string(tier)),
	)

	return &MatchResult{
		Role:     target.Name,
		Score:    s.Value,
		Base:     s.Base,
		Tier:     tier,
		Matched:  s.Matched,
		Missing:  s.Missing,
		Bonuses:  s.Bonuses,
		Findings: BuildReportTop(s.Value, s.Matched, s.Missing, target.Name, a.top),
		Checks:   CheckATS(resume),
		Summary:  Summary(target.Name, s.Matched),
	}, nil
}

// Score runs only the scoring step for resumeText against jobText.
func (a *Analyzer) Score(resumeText, jobText string) (Score, error) {
	if err := Validate(resumeText); err != nil {
		return Score{}, err
	}
	return a.score(NewDocument(resumeText), NewDocument(jobText), a.rules), nil
}
