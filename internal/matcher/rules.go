package matcher

import (
	"fmt"
	"strings"
)

// Rule adds Bonus to the score when the resume carries every All term and,
// if Any is not empty, at least one Any term. Terms are matched as whole tokens.
type Rule struct {
	Name  string   `mapstructure:"name" yaml:"name" json:"name"`
	All   []string `mapstructure:"all" yaml:"all" json:"all,omitempty"`
	Any   []string `mapstructure:"any" yaml:"any" json:"any,omitempty"`
	Bonus int      `mapstructure:"bonus" yaml:"bonus" json:"bonus"`
}

// RuleSet is evaluated in order; every rule is independent of the others.
type RuleSet []Rule

const (
	RuleSectionHeadings = "section-headings"
	RuleActionVerbs     = "action-verbs"
)

// ActionVerbs are the verbs that count as strong action signals.
var ActionVerbs = []string{"developed", "managed"}

// DefaultRules returns the built-in bonus table.
func DefaultRules() RuleSet {
	return RuleSet{
		{Name: RuleSectionHeadings, All: []string{"experience", "skills"}, Bonus: 5},
		{Name: RuleActionVerbs, Any: append([]string(nil), ActionVerbs...), Bonus: 5},
	}
}

// Validate checks that every rule has a name and at least one term.
func (rs RuleSet) Validate() error {
	seen := make(map[string]struct{}, len(rs))
	for i, r := range rs {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return fmt.Errorf("rule %d: name is required", i)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("rule %q: duplicate name", name)
		}
		seen[name] = struct{}{}
		if len(r.All) == 0 && len(r.Any) == 0 {
			return fmt.Errorf("rule %q: at least one term is required", name)
		}
	}
	return nil
}

// Matches reports whether the rule fires for the resume document.
func (r Rule) Matches(resume *Document) bool {
	if len(r.All) == 0 && len(r.Any) == 0 {
		return false
	}
	for _, term := range r.All {
		if !resume.Has(strings.TrimSpace(term)) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, term := range r.Any {
		if resume.Has(strings.TrimSpace(term)) {
			return true
		}
	}
	return false
}

// Apply returns the rules that fire for resume and the sum of their bonuses.
func (rs RuleSet) Apply(resume *Document) ([]Rule, int) {
	var (
		fired []Rule
		total int
	)
	for _, r := range rs {
		if r.Matches(resume) {
			fired = append(fired, r)
			total += r.Bonus
		}
	}
	return fired, total
}
