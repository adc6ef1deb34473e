package matcher

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	sampleResume = "Experienced in React, Redux, and Node.js. Developed and managed features."
	sampleJob    = "React Redux Tailwind hooks JavaScript REST APIs CI/CD Testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		opts   []TokenizeOption
		expect []string
	}{
		{name: "empty", input: "", expect: []string{}},
		{name: "only separators", input: " ,./-- ", expect: []string{}},
		{name: "lowercases and splits", input: "CI/CD, REST-APIs", expect: []string{"ci", "cd", "rest", "apis"}},
		{name: "keeps digits", input: "Python3 and 5 years", expect: []string{"python3", "and", "5", "years"}},
		{name: "unicode letters", input: "Über-cool naïve", expect: []string{"über", "cool", "naïve"}},
		{name: "min length", input: "Go is a fun language", opts: []TokenizeOption{WithMinLength(3)}, expect: []string{"fun", "language"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(tt.input, tt.opts...)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestDocumentCounts(t *testing.T) {
	doc := NewDocument("Go go GO rust")

	if doc.Count("go") != 3 {
		t.Fatalf("expected 3 occurrences of go, got %d", doc.Count("go"))
	}
	if !doc.Has("RUST") {
		t.Fatalf("expected case-insensitive lookup")
	}
	if got := doc.Distinct(); !reflect.DeepEqual(got, []string{"go", "rust"}) {
		t.Fatalf("unexpected distinct tokens: %v", got)
	}
	if doc.Text() != "Go go GO rust" {
		t.Fatalf("unexpected text: %q", doc.Text())
	}
}

func TestScoreSampleScenario(t *testing.T) {
	got := ScoreText(sampleResume, sampleJob, DefaultRules())

	if got.Base != 20 {
		t.Fatalf("expected base 20, got %d", got.Base)
	}
	if got.Value != 25 {
		t.Fatalf("expected score 25, got %d", got.Value)
	}
	if !reflect.DeepEqual(got.Matched, []string{"react", "redux"}) {
		t.Fatalf("unexpected matched: %v", got.Matched)
	}

	expectedMissing := []string{"tailwind", "hooks", "javascript", "rest", "apis", "ci", "cd", "testing"}
	if !reflect.DeepEqual(got.Missing, expectedMissing) {
		t.Fatalf("unexpected missing: %v", got.Missing)
	}

	if len(got.Bonuses) != 1 || got.Bonuses[0].Name != RuleActionVerbs {
		t.Fatalf("expected only the action verbs bonus, got %+v", got.Bonuses)
	}
}

func TestScoreProperties(t *testing.T) {
	t.Parallel()

	cases := []struct {
		resume string
		job    string
	}{
		{resume: sampleResume, job: sampleJob},
		{resume: "experience skills developed managed go", job: "go"},
		{resume: "nothing here", job: "kubernetes terraform"},
		{resume: "x", job: ""},
		{resume: "React React React", job: "react react vue"},
		{resume: "Skills: Go. Experience: 5 years.", job: "Go, Kubernetes; Go!"},
	}

	for _, tc := range cases {
		t.Run(tc.job, func(t *testing.T) {
			t.Parallel()

			got := ScoreText(tc.resume, tc.job, DefaultRules())
			if got.Value < MinScore || got.Value > MaxScore {
				t.Fatalf("score out of range: %d", got.Value)
			}

			universe := NewDocument(tc.job).Distinct()
			if len(got.Matched)+len(got.Missing) != len(universe) {
				t.Fatalf("matched and missing do not cover the universe: %v %v %v", got.Matched, got.Missing, universe)
			}

			seen := make(map[string]bool)
			for _, kw := range got.Matched {
				seen[kw] = true
			}
			for _, kw := range got.Missing {
				if seen[kw] {
					t.Fatalf("keyword %q is both matched and missing", kw)
				}
				seen[kw] = true
			}
			for _, kw := range universe {
				if !seen[kw] {
					t.Fatalf("keyword %q lost", kw)
				}
			}

			again := ScoreText(tc.resume, tc.job, DefaultRules())
			if !reflect.DeepEqual(got, again) {
				t.Fatalf("expected identical results, got %+v and %+v", got, again)
			}
		})
	}
}

func TestScoreEmptyJob(t *testing.T) {
	got := ScoreText("Developed and managed. Experience. Skills.", "", DefaultRules())
	if got.Value != 0 || got.Base != 0 {
		t.Fatalf("expected zero score for empty job, got %+v", got)
	}
	if len(got.Matched) != 0 || len(got.Missing) != 0 || len(got.Bonuses) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestScoreFullCoverageIsClamped(t *testing.T) {
	got := ScoreText("react redux", "React Redux", DefaultRules())
	if got.Base != 100 || got.Value != 100 {
		t.Fatalf("expected 100, got %+v", got)
	}

	withBonuses := ScoreText("Experience Skills Developed react redux", "React Redux", DefaultRules())
	if withBonuses.Base != 100 {
		t.Fatalf("expected base 100, got %d", withBonuses.Base)
	}
	if withBonuses.Value != 100 {
		t.Fatalf("expected bonuses to be clamped at 100, got %d", withBonuses.Value)
	}
	if len(withBonuses.Bonuses) != 2 {
		t.Fatalf("expected both bonuses to fire, got %+v", withBonuses.Bonuses)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	upper := ScoreText("React Developer", "react developer", DefaultRules())
	lower := ScoreText("react developer", "react developer", DefaultRules())
	if !reflect.DeepEqual(upper, lower) {
		t.Fatalf("expected equal results, got %+v and %+v", upper, lower)
	}
}

func TestScoreRounding(t *testing.T) {
	// 1 of 3 -> 33.33, 2 of 3 -> 66.67
	if got := ScoreText("a", "a b c", nil); got.Value != 33 {
		t.Fatalf("expected 33, got %d", got.Value)
	}
	if got := ScoreText("a b", "a b c", nil); got.Value != 67 {
		t.Fatalf("expected 67, got %d", got.Value)
	}
	// 1 of 8 -> 12.5 rounds half away from zero
	if got := ScoreText("a", "a b c d e f g h", nil); got.Value != 13 {
		t.Fatalf("expected 13, got %d", got.Value)
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rule   Rule
		resume string
		expect bool
	}{
		{name: "all present", rule: Rule{Name: "r", All: []string{"experience", "skills"}}, resume: "Experience and Skills", expect: true},
		{name: "all partially present", rule: Rule{Name: "r", All: []string{"experience", "skills"}}, resume: "Experienced engineer with skills", expect: false},
		{name: "any present", rule: Rule{Name: "r", Any: []string{"developed", "managed"}}, resume: "Managed a team", expect: true},
		{name: "any absent", rule: Rule{Name: "r", Any: []string{"developed", "managed"}}, resume: "Led a team", expect: false},
		{name: "all and any", rule: Rule{Name: "r", All: []string{"go"}, Any: []string{"grpc", "http"}}, resume: "Go HTTP services", expect: true},
		{name: "no terms never fires", rule: Rule{Name: "r"}, resume: "anything", expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.rule.Matches(NewDocument(tt.resume)); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestRuleSetValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules must be valid: %v", err)
	}

	invalid := []RuleSet{
		{{Name: "", Any: []string{"x"}}},
		{{Name: "a", Any: []string{"x"}}, {Name: "a", Any: []string{"y"}}},
		{{Name: "empty"}},
	}
	for i, rs := range invalid {
		if err := rs.Validate(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestTierFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score  int
		expect Tier
	}{
		{score: 100, expect: TierStrong},
		{score: 80, expect: TierStrong},
		{score: 79, expect: TierSolid},
		{score: 50, expect: TierSolid},
		{score: 49, expect: TierReview},
		{score: 0, expect: TierReview},
	}

	for _, tt := range tests {
		if got := TierFor(tt.score); got != tt.expect {
			t.Fatalf("score %d: expected %s, got %s", tt.score, tt.expect, got)
		}
	}
}

func TestBuildReportTierBoundary(t *testing.T) {
	matched := []string{"react", "redux"}
	missing := []string{"tailwind"}

	at79 := BuildReport(79, matched, missing, "Frontend Developer")
	at80 := BuildReport(80, matched, missing, "Frontend Developer")

	if reflect.DeepEqual(at79, at80) {
		t.Fatalf("expected different findings for 79 and 80")
	}
	if !strings.HasPrefix(at80[0], "Excellent alignment") {
		t.Fatalf("unexpected strong finding: %q", at80[0])
	}
	if !strings.HasPrefix(at79[0], "Solid foundation") {
		t.Fatalf("unexpected solid finding: %q", at79[0])
	}
}

func TestBuildReportTemplates(t *testing.T) {
	missing := []string{"tailwind", "hooks", "javascript", "rest"}
	got := BuildReport(25, []string{"react", "redux"}, missing, "Frontend Developer")

	expect := []string{
		"The resume requires a major review before applying for the **Frontend Developer** role.",
		"Integrate the missing technical keywords: **tailwind, hooks, javascript** into relevant bullet points.",
		"Add 2-3 quantifiable achievements to your **Experience** section.",
		"Include links to your **GitHub** and **LinkedIn** for professional verification.",
	}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("unexpected findings:\n%s", strings.Join(got, "\n"))
	}

	solid := BuildReport(60, nil, nil, "")
	if solid[2] != "Add projects showcasing **advanced APIs** or quantify your experience with **key technologies** to improve the match." {
		t.Fatalf("unexpected fallback finding: %q", solid[2])
	}
	if !strings.Contains(solid[0], "**target**") {
		t.Fatalf("expected fallback role name, got %q", solid[0])
	}

	strong := BuildReport(100, []string{"go"}, nil, "Backend Engineer")
	if strong[len(strong)-1] != "No critical keyword gaps detected for this role." {
		t.Fatalf("unexpected last strong finding: %q", strong[len(strong)-1])
	}

	again := BuildReport(25, []string{"react", "redux"}, missing, "Frontend Developer")
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("expected deterministic findings")
	}
}

func TestBuildReportTop(t *testing.T) {
	got := BuildReportTop(60, []string{"a"}, []string{"b", "c", "d"}, "Role", 1)
	if got[1] != "Integrate the missing technical keywords: **b** into relevant bullet points." {
		t.Fatalf("unexpected finding: %q", got[1])
	}
}

func TestCheckATS(t *testing.T) {
	checks := CheckATS(NewDocument(sampleResume))
	if len(checks) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(checks))
	}

	expect := map[string]string{
		"Proper Section Headings": StatusFail,
		"Action Verbs Usage":      StatusGood,
		"Quantified Achievements": StatusNeedsImprovement,
	}
	for _, c := range checks {
		if expect[c.Label] != c.Status {
			t.Fatalf("check %q: expected %s, got %s", c.Label, expect[c.Label], c.Status)
		}
	}

	passing := CheckATS(NewDocument("Skills: Go. Managed 4 engineers and cut costs by 30%."))
	for _, c := range passing {
		if !c.Passed {
			t.Fatalf("expected %q to pass", c.Label)
		}
	}
}

func TestAnalyzerRejectsEmptyResume(t *testing.T) {
	analyzer, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	called := false
	analyzer.score = func(resume, job *Document, rules RuleSet) Score {
		called = true
		return Score{}
	}

	for _, input := range []string{"", "   \n\t "} {
		result, err := analyzer.Analyze(input, Target{Name: "Frontend Developer", Text: sampleJob})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if result != nil {
			t.Fatalf("expected no partial result")
		}

		if _, err := analyzer.Score(input, sampleJob); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput from Score, got %v", err)
		}
	}

	if called {
		t.Fatalf("scorer must not run for empty resume text")
	}
}

func TestAnalyzerAnalyze(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)

	analyzer, err := NewAnalyzer(WithLogger(zap.New(core)), WithTop(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := analyzer.Analyze(sampleResume, Target{Name: "Frontend Developer", Text: sampleJob})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score != 25 || result.Base != 20 {
		t.Fatalf("unexpected score: %+v", result)
	}
	if result.Tier != TierReview {
		t.Fatalf("expected review tier, got %s", result.Tier)
	}
	if result.Findings[1] != "Integrate the missing technical keywords: **tailwind, hooks** into relevant bullet points." {
		t.Fatalf("unexpected finding: %q", result.Findings[1])
	}
	if !strings.Contains(result.Summary, "**react, redux**") {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
	if len(result.Checks) != 3 {
		t.Fatalf("expected ATS checks, got %d", len(result.Checks))
	}

	entries := observed.FilterMessage("resume scored").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["score"] != int64(25) {
		t.Fatalf("unexpected logged score: %v", entries[0].ContextMap()["score"])
	}
}

func TestNewAnalyzerRejectsInvalidRules(t *testing.T) {
	if _, err := NewAnalyzer(WithRules(RuleSet{{Name: "broken"}})); err == nil {
		t.Fatal("expected error for rule without terms")
	}
}
