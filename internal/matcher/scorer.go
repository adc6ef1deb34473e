package matcher

import (
	"math"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Score is the result of comparing a resume with a job description.
type Score struct {
	// Value is the final score after bonuses, within [MinScore, MaxScore].
	Value int `json:"score"`
	// Base is the overlap score before bonuses.
	Base    int      `json:"base"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Bonuses []Rule   `json:"bonuses,omitempty"`
}

// ScoreText scores resumeText against jobText.
//
// The universe is the set of distinct job tokens. Matched and Missing keep
// the order in which tokens first appear in the job text. A job text without
// tokens scores 0 and no bonus is applied.
func ScoreText(resumeText, jobText string, rules RuleSet) Score {
	return ScoreDocuments(NewDocument(resumeText), NewDocument(jobText), rules)
}

// ScoreDocuments is ScoreText over already tokenized documents.
func ScoreDocuments(resume, job *Document, rules RuleSet) Score {
	universe := job.Distinct()
	result := Score{
		Matched: make([]string, 0, len(universe)),
		Missing: make([]string, 0, len(universe)),
	}
	if len(universe) == 0 {
		return result
	}

	for _, token := range universe {
		if resume.Has(token) {
			result.Matched = append(result.Matched, token)
			continue
		}
		result.Missing = append(result.Missing, token)
	}

	result.Base = overlap(len(result.Matched), len(universe))

	fired, bonus := rules.Apply(resume)
	result.Bonuses = fired
	result.Value = clamp(result.Base + bonus)

	return result
}

func overlap(matched, total int) int {
	return int(math.Round(100 * float64(matched) / float64(max(1, total))))
}

func clamp(score int) int {
	return min(MaxScore, max(MinScore, score))
}
