package matcher

import (
	"strings"
	"unicode"
)

// CheckStatus values reported by ATS checks.
const (
	StatusPass             = "PASS"
	StatusFail             = "FAIL"
	StatusGood             = "GOOD"
	StatusNeedsImprovement = "NEEDS_IMPROVEMENT"
)

// Check is the outcome of one ATS formatting heuristic.
type Check struct {
	Label   string `json:"label"`
	Passed  bool   `json:"passed"`
	Status  string `json:"status"`
	Details string `json:"details"`
}

type atsRule struct {
	label      string
	passStatus string
	failStatus string
	passDetail string
	failDetail string
	test       func(resume *Document) bool
}

var atsRules = []atsRule{
	{
		label:      "Proper Section Headings",
		passStatus: StatusPass,
		failStatus: StatusFail,
		passDetail: "Experience, Skills and Education sections are easy for parsers to find.",
		failDetail: "Add a clearly labelled Skills section so parsers can extract your keywords.",
		test: func(resume *Document) bool {
			return resume.Has("skills")
		},
	},
	{
		label:      "Action Verbs Usage",
		passStatus: StatusGood,
		failStatus: StatusNeedsImprovement,
		passDetail: "Bullet points start with strong action verbs.",
		failDetail: "Consider using stronger verbs like 'Led', 'Engineered', 'Developed'.",
		test: func(resume *Document) bool {
			for _, verb := range ActionVerbs {
				if resume.Has(verb) {
					return true
				}
			}
			return false
		},
	},
	{
		label:      "Quantified Achievements",
		passStatus: StatusPass,
		failStatus: StatusNeedsImprovement,
		passDetail: "Achievements are backed by numbers.",
		failDetail: "Quantify results with numbers, percentages or amounts.",
		test: func(resume *Document) bool {
			for _, token := range resume.Distinct() {
				if strings.IndexFunc(token, unicode.IsDigit) >= 0 {
					return true
				}
			}
			return false
		},
	},
}

// CheckATS runs every ATS heuristic against the resume. Checks never affect the score.
func CheckATS(resume *Document) []Check {
	checks := make([]Check, 0, len(atsRules))
	for _, rule := range atsRules {
		passed := rule.test(resume)
		check := Check{Label: rule.label, Passed: passed}
		if passed {
			check.Status, check.Details = rule.passStatus, rule.passDetail
		} else {
			check.Status, check.Details = rule.failStatus, rule.failDetail
		}
		checks = append(checks, check)
	}
	return checks
}
